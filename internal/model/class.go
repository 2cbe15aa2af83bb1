package model

import "time"

type Class struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	StudyingProgram string    `gorm:"size:100;not null" json:"studying_program"`
	Year            int       `gorm:"not null" json:"year"`
	Capacity        int       `gorm:"default:30" json:"capacity"`
	Description     *string   `gorm:"type:text" json:"description,omitempty"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Users []UserClassAssociation `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"users,omitempty"`
	Exams []Exam                 `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"exams,omitempty"`
}

type UserClassAssociation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:ix_user_class_unique" json:"user_id"`
	ClassID     uint      `gorm:"not null;uniqueIndex:ix_user_class_unique" json:"class_id"`
	IsProfessor bool      `gorm:"default:false" json:"is_professor"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User  User  `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Class Class `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
