package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/AmineGaf/fraud-detection-system/internal/dto"
	"github.com/AmineGaf/fraud-detection-system/internal/ml"
)

// fraudClass is the sole positive class; boxes with any other label never
// count as fraud.
const fraudClass = "cheating"

// DetectionService wraps the shared detection model. It is stateless per
// call and never returns an error past its boundary: every failure mode
// collapses into a result with empty detections and a populated Error field.
type DetectionService struct {
	model         ml.Model
	minConfidence float64
}

func NewDetectionService(model ml.Model, minConfidence float64) *DetectionService {
	return &DetectionService{
		model:         model,
		minConfidence: minConfidence,
	}
}

func (s *DetectionService) Detect(ctx context.Context, imageData string) *dto.DetectionResult {
	frame, err := decodeFrame(imageData)
	if err != nil {
		return s.errorResult(err.Error())
	}

	boxes, err := s.model.Predict(ctx, frame)
	if err != nil {
		return s.errorResult("model prediction failed: " + err.Error())
	}

	detections := []dto.Detection{}
	isFraud := false
	for _, box := range boxes {
		if box.Confidence > s.minConfidence && box.ClassName == fraudClass {
			isFraud = true
			detections = append(detections, dto.Detection{
				ClassID:    box.ClassID,
				ClassName:  box.ClassName,
				Confidence: box.Confidence,
				BBox:       box.BBox,
			})
		}
	}

	return &dto.DetectionResult{
		Detections: detections,
		IsFraud:    isFraud,
		Timestamp:  time.Now().Format(time.RFC3339),
	}
}

func (s *DetectionService) errorResult(message string) *dto.DetectionResult {
	return &dto.DetectionResult{
		Detections: []dto.Detection{},
		IsFraud:    false,
		Timestamp:  time.Now().Format(time.RFC3339),
		Error:      message,
	}
}

// decodeFrame turns a base64 string, with or without a data-URL prefix, into
// validated image bytes.
func decodeFrame(imageData string) ([]byte, error) {
	trimmed := strings.TrimSpace(imageData)
	if trimmed == "" {
		return nil, errInvalidImage("empty image data")
	}

	// Browsers send webcam frames as data URLs; keep only the payload.
	if idx := strings.IndexByte(trimmed, ','); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}

	// Base64 requires a length divisible by 4.
	if padding := len(trimmed) % 4; padding != 0 {
		trimmed += strings.Repeat("=", 4-padding)
	}

	frame, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, errInvalidImage("invalid base64 image data")
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(frame)); err != nil {
		return nil, errInvalidImage("could not decode image")
	}

	return frame, nil
}

type errInvalidImage string

func (e errInvalidImage) Error() string { return string(e) }
