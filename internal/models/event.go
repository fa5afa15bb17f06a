package models

import (
	"time"
)

type Event struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	OrganizerID uint      `json:"organizer_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	EventDate   time.Time `json:"event_date" gorm:"not null"`
	MaxPhotos   int       `json:"max_photos" gorm:"not null;default:100"` // advisory, not enforced on upload
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	QRCodeData  string    `json:"qr_code_data" gorm:"not null"` // guest URL, computed once at creation
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type EventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	EventDate   time.Time `json:"event_date" validate:"required"`
	MaxPhotos   int       `json:"max_photos" validate:"omitempty,min=1,max=1000"`
	IsActive    *bool     `json:"is_active"`
}

// UpdateEventRequest carries the full editable copy of an event. The
// management page writes every field back in a single update.
type UpdateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	EventDate   time.Time `json:"event_date" validate:"required"`
	MaxPhotos   int       `json:"max_photos" validate:"omitempty,min=1,max=1000"`
	IsActive    bool      `json:"is_active"`
}

type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	EventDate   time.Time `json:"event_date"`
	MaxPhotos   int       `json:"max_photos"`
	IsActive    bool      `json:"is_active"`
	QRCodeData  string    `json:"qr_code_data"`
	PhotoCount  int64     `json:"photo_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GuestEventResponse is the subset of event fields exposed on the guest page.
type GuestEventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	EventDate   time.Time `json:"event_date"`
	MaxPhotos   int       `json:"max_photos"`
	IsActive    bool      `json:"is_active"`
}
