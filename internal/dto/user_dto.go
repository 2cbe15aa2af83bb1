package dto

import "github.com/AmineGaf/fraud-detection-system/internal/model"

type CreateUserInput struct {
	Email           string        `json:"email" binding:"required,email"`
	Password        *string       `json:"password"`
	FullName        string        `json:"full_name" binding:"required"`
	InstitutionalID *string       `json:"institutional_id"`
	RoleID          *model.RoleID `json:"role_id"`
}

// UpdateUserInput is a partial update: nil fields keep their stored value.
type UpdateUserInput struct {
	Email           *string       `json:"email" binding:"omitempty,email"`
	Password        *string       `json:"password"`
	FullName        *string       `json:"full_name"`
	InstitutionalID *string       `json:"institutional_id"`
	IsActive        *bool         `json:"is_active"`
	RoleID          *model.RoleID `json:"role_id"`
}

type AssignClassInput struct {
	ClassID     uint `json:"class_id" binding:"required"`
	IsProfessor bool `json:"is_professor"`
}

type BulkAssignInput struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
	ClassID uint   `json:"class_id" binding:"required"`
}

type BulkAssignResult struct {
	Assigned int `json:"assigned"`
	Skipped  int `json:"skipped"`
}
