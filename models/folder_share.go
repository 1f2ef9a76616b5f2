package models

import "time"

// FolderShare grants read visibility of a folder to an extra department.
// It never transfers ownership and applies at any depth of the tree.
type FolderShare struct {
	FolderID     uint      `gorm:"primaryKey" json:"folder_id"`
	DepartmentID uint      `gorm:"primaryKey" json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
}
