package repository

import (
	"github.com/snapgather/snapgather-backend/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *models.Event) (*models.Event, error) {
	if err := r.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) GetByID(id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) GetUserEvents(organizerID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("organizer_id = ?", organizerID).Order("created_at DESC").Find(&events).Error
	return events, err
}

func (r *EventRepository) CountUserEvents(organizerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Where("organizer_id = ?", organizerID).Count(&count).Error
	return count, err
}

// UpdateOwned writes the given fields in a single update scoped by both the
// event ID and the organizer ID. A non-matching organizer updates zero rows.
func (r *EventRepository) UpdateOwned(id string, organizerID uint, updates map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.Event{}).
		Where("id = ? AND organizer_id = ?", id, organizerID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *EventRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Event{}).Error
}
