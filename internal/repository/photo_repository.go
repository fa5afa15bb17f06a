package repository

import (
	"github.com/snapgather/snapgather-backend/internal/models"
	"gorm.io/gorm"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

func (r *PhotoRepository) GetByID(id uint) (*models.Photo, error) {
	var photo models.Photo
	if err := r.db.First(&photo, id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepository) GetByEventID(eventID string) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.Where("event_id = ?", eventID).
		Order("uploaded_at DESC").
		Find(&photos).Error
	return photos, err
}

func (r *PhotoRepository) GetApprovedByEventID(eventID string) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.Where("event_id = ? AND is_approved = ?", eventID, true).
		Order("uploaded_at DESC").
		Find(&photos).Error
	return photos, err
}

func (r *PhotoRepository) CountByEventID(eventID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Photo{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

func (r *PhotoRepository) UpdateApproval(id uint, approved bool) error {
	return r.db.Model(&models.Photo{}).Where("id = ?", id).
		Update("is_approved", approved).Error
}

func (r *PhotoRepository) Delete(id uint) error {
	return r.db.Delete(&models.Photo{}, id).Error
}

func (r *PhotoRepository) DeleteByEventID(eventID string) error {
	return r.db.Where("event_id = ?", eventID).Delete(&models.Photo{}).Error
}

func (r *PhotoRepository) FilePathExists(filePath string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Photo{}).Where("file_path = ?", filePath).Count(&count).Error
	return count > 0, err
}
