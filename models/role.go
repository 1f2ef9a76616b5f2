package models

import "time"

// RoleName is the closed set of roles. Every authorization check switches on
// this type; adding a role means revisiting each switch.
type RoleName string

const (
	RoleAdmin   RoleName = "Admin"
	RoleManager RoleName = "Manager"
	RoleUser    RoleName = "User"
)

func (n RoleName) Known() bool {
	switch n {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

type Role struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        RoleName  `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
