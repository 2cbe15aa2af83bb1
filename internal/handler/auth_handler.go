package handler

import (
	"net/http"

	"github.com/AmineGaf/fraud-detection-system/internal/dto"
	"github.com/AmineGaf/fraud-detection-system/internal/service"
	"github.com/AmineGaf/fraud-detection-system/pkg/response"
	"github.com/AmineGaf/fraud-detection-system/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth   service.AuthService
	resets service.PasswordResetService
}

func NewAuthHandler(auth service.AuthService, resets service.PasswordResetService) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		resets: resets,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var input dto.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input dto.ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.resets.RequestReset(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}

	// Always 202 so the endpoint cannot be used to enumerate accounts.
	c.JSON(http.StatusAccepted, gin.H{"message": "If the email exists, you'll receive a reset link"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input dto.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.resets.ResetPassword(c.Request.Context(), input.Token, input.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
