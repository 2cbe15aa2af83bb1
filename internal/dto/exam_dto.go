package dto

import (
	"time"

	"github.com/AmineGaf/fraud-detection-system/internal/model"
)

type CreateExamInput struct {
	Name     string            `json:"name" binding:"required"`
	ExamDate time.Time         `json:"exam_date" binding:"required"`
	ClassID  uint              `json:"class_id" binding:"required"`
	Status   *model.ExamStatus `json:"status" binding:"omitempty,oneof=upcoming ongoing completed"`
}

type UpdateExamInput struct {
	Name          *string           `json:"name"`
	ExamDate      *time.Time        `json:"exam_date"`
	Status        *model.ExamStatus `json:"status" binding:"omitempty,oneof=upcoming ongoing completed"`
	FraudStatus   *string           `json:"fraud_status"`
	FraudEvidence model.Evidence    `json:"fraud_evidence"`
}
