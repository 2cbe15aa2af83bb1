package service_test

import (
	"errors"
	"testing"

	"github.com/AmineGaf/fraud-detection-system/internal/ml"
	"github.com/AmineGaf/fraud-detection-system/internal/service"
	"github.com/stretchr/testify/assert"
)

// onePixelPNG is a valid 1x1 PNG, base64 encoded.
const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func TestDetect_InvalidInput(t *testing.T) {
	detector := service.NewDetectionService(&fakeModel{}, 0.7)

	cases := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"whitespace only", "   "},
		{"not base64", "this is definitely not base64!!!"},
		{"base64 but not an image", "aGVsbG8gd29ybGQ="},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := detector.Detect(t.Context(), tc.input)

			assert.NotEmpty(t, result.Error)
			assert.False(t, result.IsFraud)
			assert.Empty(t, result.Detections)
			assert.NotEmpty(t, result.Timestamp)
		})
	}
}

func TestDetect_DataURLPrefixStripped(t *testing.T) {
	model := &fakeModel{boxes: []ml.Box{
		{ClassID: 0, ClassName: "cheating", Confidence: 0.9, BBox: [4]float64{1, 2, 3, 4}},
	}}
	detector := service.NewDetectionService(model, 0.7)

	result := detector.Detect(t.Context(), "data:image/png;base64,"+onePixelPNG)

	assert.Empty(t, result.Error)
	assert.True(t, result.IsFraud)
	assert.Len(t, result.Detections, 1)
}

func TestDetect_PaddingNormalized(t *testing.T) {
	detector := service.NewDetectionService(&fakeModel{}, 0.7)

	// Strip the trailing padding; the adapter must restore it before decode.
	unpadded := onePixelPNG[:len(onePixelPNG)-2]

	result := detector.Detect(t.Context(), unpadded)

	assert.Empty(t, result.Error)
	assert.False(t, result.IsFraud)
}

func TestDetect_ConfidenceThreshold(t *testing.T) {
	highConfidence := &fakeModel{boxes: []ml.Box{
		{ClassID: 0, ClassName: "cheating", Confidence: 0.9, BBox: [4]float64{10, 20, 110, 220}},
	}}
	detector := service.NewDetectionService(highConfidence, 0.7)

	result := detector.Detect(t.Context(), onePixelPNG)
	assert.True(t, result.IsFraud)
	assert.Len(t, result.Detections, 1)
	assert.Equal(t, "cheating", result.Detections[0].ClassName)
	assert.InDelta(t, 0.9, result.Detections[0].Confidence, 1e-9)

	lowConfidence := &fakeModel{boxes: []ml.Box{
		{ClassID: 0, ClassName: "cheating", Confidence: 0.3, BBox: [4]float64{10, 20, 110, 220}},
	}}
	detector = service.NewDetectionService(lowConfidence, 0.7)

	result = detector.Detect(t.Context(), onePixelPNG)
	assert.False(t, result.IsFraud)
	assert.Empty(t, result.Detections)
	assert.Empty(t, result.Error)
}

func TestDetect_OnlyPositiveClassCounts(t *testing.T) {
	model := &fakeModel{boxes: []ml.Box{
		{ClassID: 1, ClassName: "normal", Confidence: 0.95},
	}}
	detector := service.NewDetectionService(model, 0.7)

	result := detector.Detect(t.Context(), onePixelPNG)

	assert.False(t, result.IsFraud)
	assert.Empty(t, result.Detections)
}

func TestDetect_ModelFailureContained(t *testing.T) {
	model := &fakeModel{err: errors.New("inference unreachable")}
	detector := service.NewDetectionService(model, 0.7)

	result := detector.Detect(t.Context(), onePixelPNG)

	assert.Contains(t, result.Error, "inference unreachable")
	assert.False(t, result.IsFraud)
	assert.Empty(t, result.Detections)
}
