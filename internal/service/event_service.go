package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/snapgather/snapgather-backend/internal/models"
	"github.com/snapgather/snapgather-backend/internal/repository"
)

type EventService struct {
	eventRepo    *repository.EventRepository
	photoRepo    *repository.PhotoRepository
	userRepo     *repository.UserRepository
	photoService *PhotoService
	publicURL    string // serving origin for qr_code_data
}

func NewEventService(
	eventRepo *repository.EventRepository,
	photoRepo *repository.PhotoRepository,
	userRepo *repository.UserRepository,
	photoService *PhotoService,
	publicURL string,
) *EventService {
	return &EventService{
		eventRepo:    eventRepo,
		photoRepo:    photoRepo,
		userRepo:     userRepo,
		photoService: photoService,
		publicURL:    strings.TrimRight(publicURL, "/"),
	}
}

func (s *EventService) CreateEvent(userID uint, req models.EventRequest) (*models.Event, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	count, err := s.eventRepo.CountUserEvents(userID)
	if err != nil {
		return nil, err
	}
	if count >= int64(user.EventLimit) {
		return nil, ErrEventLimitReached
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	maxPhotos := req.MaxPhotos
	if maxPhotos == 0 {
		maxPhotos = 100
	}

	id := uuid.NewString()

	event := &models.Event{
		ID:          id,
		OrganizerID: userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		EventDate:   req.EventDate,
		MaxPhotos:   maxPhotos,
		IsActive:    isActive,
		// Computed once at creation; always resolves to the guest route.
		QRCodeData: fmt.Sprintf("%s/g/%s", s.publicURL, id),
	}

	return s.eventRepo.Create(event)
}

// GetEvent loads an event for its organizer. Non-owners get an explicit
// ErrForbidden rather than a silent miss.
func (s *EventService) GetEvent(eventID string, userID uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	if event.OrganizerID != userID {
		return nil, ErrForbidden
	}
	return event, nil
}

// GetGuestEvent loads an event by identifier without ownership checks.
// Inactive events are still returned; the upload path is gated separately.
func (s *EventService) GetGuestEvent(eventID string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) GetUserEvents(userID uint) ([]models.EventResponse, error) {
	events, err := s.eventRepo.GetUserEvents(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.EventResponse, 0, len(events))
	for _, event := range events {
		photoCount, err := s.photoRepo.CountByEventID(event.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, models.EventResponse{
			ID:          event.ID,
			Title:       event.Title,
			Description: event.Description,
			Location:    event.Location,
			EventDate:   event.EventDate,
			MaxPhotos:   event.MaxPhotos,
			IsActive:    event.IsActive,
			QRCodeData:  event.QRCodeData,
			PhotoCount:  photoCount,
			CreatedAt:   event.CreatedAt,
			UpdatedAt:   event.UpdatedAt,
		})
	}
	return responses, nil
}

// UpdateEvent writes all mutable fields back in a single update scoped by
// both event ID and organizer ID. Ownership is checked explicitly first; the
// scoped predicate remains as a second fence.
func (s *EventService) UpdateEvent(eventID string, userID uint, req models.UpdateEventRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	if event.OrganizerID != userID {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"location":    req.Location,
		"event_date":  req.EventDate,
		"max_photos":  req.MaxPhotos,
		"is_active":   req.IsActive,
	}

	rows, err := s.eventRepo.UpdateOwned(eventID, userID, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrForbidden
	}

	return s.eventRepo.GetByID(eventID)
}

// DeleteEvent removes the event's photos (blobs best-effort, rows
// unconditionally) and then the event itself.
func (s *EventService) DeleteEvent(eventID string, userID uint) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return ErrEventNotFound
	}
	if event.OrganizerID != userID {
		return ErrForbidden
	}

	if err := s.photoService.DeleteEventPhotos(eventID); err != nil {
		return err
	}

	return s.eventRepo.Delete(eventID)
}
