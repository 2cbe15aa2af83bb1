package model

import "time"

type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Email           string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash    *string   `gorm:"size:128" json:"-"`
	FullName        string    `gorm:"size:100;not null" json:"full_name"`
	InstitutionalID *string   `gorm:"size:50;uniqueIndex" json:"institutional_id,omitempty"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	RoleID          RoleID    `gorm:"not null" json:"role_id"`
	Role            Role      `gorm:"constraint:OnUpdate:CASCADE" json:"role"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Classes []UserClassAssociation `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"classes,omitempty"`
}

// HasPassword reports whether a credential is stored. Students created by an
// admin may have none until their first login.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"token"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
