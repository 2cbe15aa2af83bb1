package dto

type DetectInput struct {
	ImageData string `json:"image_data"`
}

type Detection struct {
	ClassID    int        `json:"class_id"`
	ClassName  string     `json:"class_name"`
	Confidence float64    `json:"confidence"`
	BBox       [4]float64 `json:"bbox"`
}

type DetectionResult struct {
	Detections []Detection `json:"detections"`
	IsFraud    bool        `json:"is_fraud"`
	Timestamp  string      `json:"timestamp"`
	Error      string      `json:"error,omitempty"`
}
