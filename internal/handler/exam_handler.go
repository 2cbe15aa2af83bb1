package handler

import (
	"net/http"

	"github.com/AmineGaf/fraud-detection-system/internal/dto"
	"github.com/AmineGaf/fraud-detection-system/internal/service"
	"github.com/AmineGaf/fraud-detection-system/pkg/response"
	"github.com/AmineGaf/fraud-detection-system/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ExamHandler struct {
	exams service.ExamService
}

func NewExamHandler(exams service.ExamService) *ExamHandler {
	return &ExamHandler{exams: exams}
}

func (h *ExamHandler) Create(c *gin.Context) {
	var input dto.CreateExamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	exam, err := h.exams.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, exam)
}

func (h *ExamHandler) Get(c *gin.Context) {
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

	exam, err := h.exams.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, exam)
}

func (h *ExamHandler) List(c *gin.Context) {
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

	exams, err := h.exams.List(c.Request.Context(), actor, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, exams)
}

func (h *ExamHandler) ListByClass(c *gin.Context) {
	actor, err := response.CurrentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	classID, err := pathID(c, "classId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	exams, err := h.exams.ListByClass(c.Request.Context(), actor, classID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, exams)
}

func (h *ExamHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.UpdateExamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	exam, err := h.exams.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, exam)
}

func (h *ExamHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.exams.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
