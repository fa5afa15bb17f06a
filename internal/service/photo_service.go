package service

import (
	"fmt"
	"mime/multipart"
	"time"

	"go.uber.org/zap"

	"github.com/snapgather/snapgather-backend/internal/models"
	"github.com/snapgather/snapgather-backend/internal/repository"
	"github.com/snapgather/snapgather-backend/pkg/storage"
	"github.com/snapgather/snapgather-backend/pkg/utils"
)

// 10MB per file
const maxUploadSize = 10 * 1024 * 1024

type PhotoService struct {
	photoRepo *repository.PhotoRepository
	eventRepo *repository.EventRepository
	storage   storage.StorageService
	logger    *zap.Logger
}

func NewPhotoService(
	photoRepo *repository.PhotoRepository,
	eventRepo *repository.EventRepository,
	blobStorage storage.StorageService,
	logger *zap.Logger,
) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		eventRepo: eventRepo,
		storage:   blobStorage,
		logger:    logger,
	}
}

// UploadGuestPhotos stores each file and records its metadata, one file at a
// time. The first failure aborts the remaining files; files already stored
// are not rolled back. max_photos is advisory and not checked here.
func (s *PhotoService) UploadGuestPhotos(eventID string, files []*multipart.FileHeader) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return ErrEventNotFound
	}

	if !event.IsActive {
		return ErrUploadsClosed
	}

	for _, file := range files {
		if err := s.uploadOne(event.ID, file); err != nil {
			return err
		}
	}

	return nil
}

func (s *PhotoService) uploadOne(eventID string, file *multipart.FileHeader) error {
	if !utils.IsValidImageType(file.Header.Get("Content-Type")) {
		return ErrInvalidFileType
	}
	if file.Size > maxUploadSize {
		return ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	key := utils.BuildStorageKey(eventID, file.Filename)
	if err := s.storage.Upload(key, src); err != nil {
		return err
	}

	// Not atomic with the upload above: a failure here leaves an orphaned
	// blob, which the sweep job reconciles later.
	photo := &models.Photo{
		EventID:    eventID,
		FileName:   file.Filename,
		FilePath:   key,
		FileSize:   file.Size,
		UploadedAt: time.Now(),
	}
	return s.photoRepo.Create(photo)
}

// GetGalleryPhotos returns the approved photos of an event, newest first,
// with public URLs resolved.
func (s *PhotoService) GetGalleryPhotos(eventID string) ([]models.PhotoResponse, error) {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		return nil, ErrEventNotFound
	}

	photos, err := s.photoRepo.GetApprovedByEventID(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get photos: %w", err)
	}

	return s.toResponses(photos), nil
}

// GetEventPhotos returns every photo of an event, including unapproved ones,
// restricted to the organizer.
func (s *PhotoService) GetEventPhotos(eventID string, userID uint) ([]models.PhotoResponse, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	if event.OrganizerID != userID {
		return nil, ErrForbidden
	}

	photos, err := s.photoRepo.GetByEventID(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get photos: %w", err)
	}

	return s.toResponses(photos), nil
}

func (s *PhotoService) SetPhotoApproval(photoID uint, userID uint, approved bool) error {
	photo, err := s.photoRepo.GetByID(photoID)
	if err != nil {
		return ErrPhotoNotFound
	}

	event, err := s.eventRepo.GetByID(photo.EventID)
	if err != nil {
		return ErrEventNotFound
	}
	if event.OrganizerID != userID {
		return ErrForbidden
	}

	return s.photoRepo.UpdateApproval(photoID, approved)
}

// DeletePhoto removes the blob best-effort, then unconditionally deletes the
// metadata row. A storage failure is logged and never blocks the deletion;
// the row removal is the authoritative signal that the photo is gone.
func (s *PhotoService) DeletePhoto(photoID uint, userID uint) error {
	photo, err := s.photoRepo.GetByID(photoID)
	if err != nil {
		return ErrPhotoNotFound
	}

	event, err := s.eventRepo.GetByID(photo.EventID)
	if err != nil {
		return ErrEventNotFound
	}
	if event.OrganizerID != userID {
		return ErrForbidden
	}

	if err := s.storage.Delete(photo.FilePath); err != nil {
		s.logger.Warn("failed to delete photo from storage",
			zap.String("file_path", photo.FilePath),
			zap.Error(err),
		)
	}

	return s.photoRepo.Delete(photoID)
}

// DeleteEventPhotos removes all photos of an event, blobs best-effort first.
func (s *PhotoService) DeleteEventPhotos(eventID string) error {
	photos, err := s.photoRepo.GetByEventID(eventID)
	if err != nil {
		return err
	}

	for _, photo := range photos {
		if err := s.storage.Delete(photo.FilePath); err != nil {
			s.logger.Warn("failed to delete photo from storage",
				zap.String("file_path", photo.FilePath),
				zap.Error(err),
			)
		}
	}

	return s.photoRepo.DeleteByEventID(eventID)
}

func (s *PhotoService) GetEventPhotoCount(eventID string) (int64, error) {
	return s.photoRepo.CountByEventID(eventID)
}

func (s *PhotoService) toResponses(photos []models.Photo) []models.PhotoResponse {
	responses := make([]models.PhotoResponse, 0, len(photos))
	for _, photo := range photos {
		responses = append(responses, models.PhotoResponse{
			ID:         photo.ID,
			EventID:    photo.EventID,
			FileName:   photo.FileName,
			FileSize:   photo.FileSize,
			IsApproved: photo.IsApproved,
			PublicURL:  s.storage.PublicURL(photo.FilePath),
			UploadedAt: photo.UploadedAt,
		})
	}
	return responses
}
