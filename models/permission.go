package models

import "time"

type ResourceType string

const (
	ResourceFolder     ResourceType = "folder"
	ResourceDocument   ResourceType = "document"
	ResourceUser       ResourceType = "user"
	ResourceDepartment ResourceType = "department"
	ResourceAudit      ResourceType = "audit"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
)

// Permission rows are the whole grant: a missing row means denied. There is
// no wildcard and no inheritance between roles.
type Permission struct {
	ID           uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleID       uint         `gorm:"not null;uniqueIndex:idx_perm_role_resource_action" json:"role_id"`
	ResourceType ResourceType `gorm:"type:varchar(50);not null;uniqueIndex:idx_perm_role_resource_action" json:"resource_type"`
	Action       Action       `gorm:"type:varchar(50);not null;uniqueIndex:idx_perm_role_resource_action" json:"action"`
	CreatedAt    time.Time    `json:"created_at"`
}
