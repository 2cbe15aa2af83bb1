package handler

import (
	"net/http"

	"github.com/AmineGaf/fraud-detection-system/internal/dto"
	"github.com/AmineGaf/fraud-detection-system/internal/service"
	"github.com/gin-gonic/gin"
)

type DetectionHandler struct {
	detector *service.DetectionService
}

func NewDetectionHandler(detector *service.DetectionService) *DetectionHandler {
	return &DetectionHandler{detector: detector}
}

// Detect always answers 200 with a structured result; failures are reported
// in the result's error field, never as an HTTP error.
func (h *DetectionHandler) Detect(c *gin.Context) {
	var input dto.DetectInput
	// A malformed body degrades to an empty frame, which the adapter
	// reports as a structured error result.
	_ = c.ShouldBindJSON(&input)

	result := h.detector.Detect(c.Request.Context(), input.ImageData)
	c.JSON(http.StatusOK, result)
}
