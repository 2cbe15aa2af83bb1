package ml

import (
	"context"
)

// Box is one raw bounding-box prediction from the detection model, before any
// confidence or class filtering.
type Box struct {
	ClassID    int        `json:"class_id"`
	ClassName  string     `json:"class_name"`
	Confidence float64    `json:"confidence"`
	BBox       [4]float64 `json:"bbox"`
}

// Model runs object detection on a decoded image. Implementations must be
// safe for concurrent use; the process holds a single shared instance.
type Model interface {
	Predict(ctx context.Context, image []byte) ([]Box, error)
}
