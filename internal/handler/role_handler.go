package handler

import (
	"errors"
	"net/http"

	"github.com/AmineGaf/fraud-detection-system/internal/model"
	"github.com/AmineGaf/fraud-detection-system/internal/repository"
	"github.com/AmineGaf/fraud-detection-system/pkg/apperror"
	"github.com/AmineGaf/fraud-detection-system/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RoleHandler serves the role catalog. Roles are seeded at bootstrap and
// read-only over HTTP.
type RoleHandler struct {
	roles repository.RoleRepository
}

func NewRoleHandler(roles repository.RoleRepository) *RoleHandler {
	return &RoleHandler{roles: roles}
}

func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roles.FindAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, roles)
}

func (h *RoleHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	role, err := h.roles.FindByID(c.Request.Context(), model.RoleID(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, apperror.NotFound("role not found"))
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, role)
}
