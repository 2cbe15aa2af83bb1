package model

import "time"

// RoleID identifies an authorization tier. The stored ids are fixed at
// bootstrap and referenced by business logic, so they are named here instead
// of floating around as bare integers.
type RoleID uint

const (
	RoleStudent    RoleID = 1
	RoleSupervisor RoleID = 2
	RoleAdmin      RoleID = 3
)

func (r RoleID) Valid() bool {
	switch r {
	case RoleStudent, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

func (r RoleID) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleSupervisor:
		return "supervisor"
	case RoleAdmin:
		return "admin"
	}
	return "unknown"
}

type Role struct {
	ID        RoleID    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
