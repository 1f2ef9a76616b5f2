package models

import "time"

// Folder belongs to exactly one department; the parent must live in the same
// department. Sibling names are unique within (parent, department).
type Folder struct {
	ID             uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string       `gorm:"type:varchar(255);not null;uniqueIndex:idx_folder_name_parent_dept" json:"name"`
	ParentFolderID *uint        `gorm:"uniqueIndex:idx_folder_name_parent_dept;index" json:"parent_folder_id"`
	DepartmentID   uint         `gorm:"not null;uniqueIndex:idx_folder_name_parent_dept;index" json:"department_id"`
	Department     *Department  `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	CreatedBy      uint         `gorm:"not null" json:"created_by"`
	Creator        *User        `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	IsPublic       bool         `gorm:"not null;default:false" json:"is_public"`
	SharedWith     []Department `gorm:"many2many:folder_shares;joinForeignKey:FolderID;joinReferences:DepartmentID" json:"shared_with_departments,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
