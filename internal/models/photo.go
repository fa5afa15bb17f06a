package models

import (
	"time"
)

type Photo struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EventID    string    `json:"event_id" gorm:"type:uuid;not null;index"`
	FileName   string    `json:"file_name" gorm:"not null"` // original client name, display only
	FilePath   string    `json:"file_path" gorm:"uniqueIndex;not null"`
	FileSize   int64     `json:"file_size" gorm:"not null"`
	IsApproved bool      `json:"is_approved" gorm:"default:false"`
	UploadedAt time.Time `json:"uploaded_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PhotoResponse struct {
	ID         uint      `json:"id"`
	EventID    string    `json:"event_id"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	IsApproved bool      `json:"is_approved"`
	PublicURL  string    `json:"public_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type PhotoApprovalRequest struct {
	IsApproved bool `json:"is_approved"`
}
