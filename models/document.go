package models

import "time"

// Document visibility is entirely derived from its owning folder; documents
// carry no sharing or public flag of their own.
type Document struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	OriginalName  string    `gorm:"type:varchar(255);not null" json:"original_name"`
	FilePath      string    `gorm:"type:varchar(1000);uniqueIndex;not null" json:"-"`
	ThumbnailPath string    `gorm:"type:varchar(1000)" json:"-"`
	FileSize      int64     `gorm:"not null" json:"file_size"`
	MimeType      string    `gorm:"type:varchar(150);not null" json:"mime_type"`
	Extension     string    `gorm:"type:varchar(20);not null" json:"extension"`
	FolderID      uint      `gorm:"not null;index" json:"folder_id"`
	Folder        *Folder   `gorm:"foreignKey:FolderID" json:"folder,omitempty"`
	UploadedBy    uint      `gorm:"not null" json:"uploaded_by"`
	Uploader      *User     `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
	Description   string    `gorm:"type:varchar(1000)" json:"description"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
