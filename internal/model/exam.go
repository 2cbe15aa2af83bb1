package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type ExamStatus string

const (
	ExamUpcoming  ExamStatus = "upcoming"
	ExamOngoing   ExamStatus = "ongoing"
	ExamCompleted ExamStatus = "completed"
)

func (s ExamStatus) Valid() bool {
	switch s {
	case ExamUpcoming, ExamOngoing, ExamCompleted:
		return true
	}
	return false
}

// Evidence holds the opaque fraud-evidence payload written by an external
// analysis workflow. It is stored as a JSON column.
type Evidence []map[string]any

func (e Evidence) Value() (driver.Value, error) {
	if e == nil {
		return nil, nil
	}
	return json.Marshal(e)
}

func (e *Evidence) Scan(value any) error {
	if value == nil {
		*e = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported evidence column type %T", value)
	}

	return json.Unmarshal(raw, e)
}

type Exam struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	ExamDate      time.Time  `gorm:"not null" json:"exam_date"`
	Status        ExamStatus `gorm:"size:20;default:upcoming" json:"status"`
	FraudStatus   *string    `gorm:"type:text" json:"fraud_status,omitempty"`
	FraudEvidence Evidence   `gorm:"type:jsonb" json:"fraud_evidence,omitempty"`
	ClassID       uint       `gorm:"not null" json:"class_id"`
	Class         Class      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
