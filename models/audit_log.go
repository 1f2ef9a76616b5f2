package models

import "time"

// AuditLog is append-only; rows are written on success paths and never read
// back by the application itself.
type AuditLog struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"index" json:"user_id"`
	Action       string    `gorm:"type:varchar(100);not null" json:"action"`
	ResourceType string    `gorm:"type:varchar(50);not null" json:"resource_type"`
	ResourceID   uint      `json:"resource_id"`
	ResourceName string    `gorm:"type:varchar(255)" json:"resource_name"`
	IPAddress    string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent    string    `gorm:"type:varchar(500)" json:"user_agent"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}
