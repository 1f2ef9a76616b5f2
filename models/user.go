package models

import "time"

// User carries its role and department preloaded; the access resolver reads
// both on every request. DepartmentID is nil exactly for Admin users.
type User struct {
	ID           uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string      `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string      `gorm:"type:varchar(100);not null" json:"last_name"`
	RoleID       uint        `gorm:"not null;index" json:"role_id"`
	Role         Role        `gorm:"foreignKey:RoleID" json:"role"`
	DepartmentID *uint       `gorm:"index" json:"department_id"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	IsActive     bool        `gorm:"not null;default:true" json:"is_active"`
	LastLogin    *time.Time  `json:"last_login"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
