package handler

import (
	"net/http"

	"github.com/AmineGaf/fraud-detection-system/internal/dto"
	"github.com/AmineGaf/fraud-detection-system/internal/service"
	"github.com/AmineGaf/fraud-detection-system/pkg/response"
	"github.com/AmineGaf/fraud-detection-system/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ClassHandler struct {
	classes service.ClassService
}

func NewClassHandler(classes service.ClassService) *ClassHandler {
	return &ClassHandler{classes: classes}
}

func (h *ClassHandler) Create(c *gin.Context) {
	var input dto.CreateClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	class, err := h.classes.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, class)
}

func (h *ClassHandler) Get(c *gin.Context) {
	actor, err := response.CurrentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	class, err := h.classes.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) List(c *gin.Context) {
	actor, err := response.CurrentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	classes, err := h.classes.List(c.Request.Context(), actor, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, classes)
}

func (h *ClassHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.UpdateClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	class, err := h.classes.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.classes.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetWithUsers returns the class with its member associations eager-loaded.
func (h *ClassHandler) GetWithUsers(c *gin.Context) {
	actor, err := response.CurrentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	class, err := h.classes.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) AddUser(c *gin.Context) {
	classID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, err := pathID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.AddClassMemberInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
			return
		}
	}

	association, err := h.classes.AddUser(c.Request.Context(), classID, userID, input.IsProfessor)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, association)
}

func (h *ClassHandler) RemoveUser(c *gin.Context) {
	classID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, err := pathID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.classes.RemoveUser(c.Request.Context(), classID, userID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
