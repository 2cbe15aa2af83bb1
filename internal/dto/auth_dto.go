package dto

import "github.com/AmineGaf/fraud-detection-system/internal/model"

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	UserEmail   string       `json:"user_email"`
	UserRoleID  model.RoleID `json:"user_roleId"`
}

type SignupInput struct {
	Email    string        `json:"email" binding:"required,email"`
	Password string        `json:"password" binding:"required,min=8"`
	FullName string        `json:"full_name" binding:"required"`
	RoleID   *model.RoleID `json:"role_id"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
