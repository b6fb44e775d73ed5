package repository

import (
	"errors"

	"github.com/ManuelReschke/HookFox/app/models"
	"gorm.io/gorm"
)

// webhookEventRepository implements WebhookEventRepository on GORM/MySQL.
type webhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates a webhook event repository backed by GORM.
func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepository{db: db}
}

func (r *webhookEventRepository) Create(event *models.WebhookEvent) error {
	return r.db.Create(event).Error
}

func (r *webhookEventRepository) GetByID(id uint) (*models.WebhookEvent, error) {
	var event models.WebhookEvent
	err := r.db.First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *webhookEventRepository) GetByReference(reference string) (*models.WebhookEvent, error) {
	var event models.WebhookEvent
	err := r.db.Where("reference = ?", reference).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *webhookEventRepository) List(limit, offset int) ([]models.WebhookEvent, error) {
	var events []models.WebhookEvent
	err := r.db.Order("timestamp DESC, id DESC").
		Offset(offset).Limit(limit).Find(&events).Error
	return events, err
}

func (r *webhookEventRepository) Update(id uint, update WebhookEventUpdate) (*models.WebhookEvent, error) {
	updates := map[string]interface{}{}
	if update.Status != nil {
		updates["status"] = *update.Status
	}
	if update.Error != nil {
		updates["error"] = *update.Error
	}
	if update.ResponseTime != nil {
		updates["response_time"] = *update.ResponseTime
	}

	if len(updates) > 0 {
		tx := r.db.Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(updates)
		if tx.Error != nil {
			return nil, tx.Error
		}
		if tx.RowsAffected == 0 {
			// Updates with identical values also reports zero rows on MySQL,
			// so confirm absence before reporting not found.
			var count int64
			if err := r.db.Model(&models.WebhookEvent{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return nil, err
			}
			if count == 0 {
				return nil, ErrEventNotFound
			}
		}
	}

	return r.GetByID(id)
}

func (r *webhookEventRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.WebhookEvent{}).Count(&count).Error
	return count, err
}

func (r *webhookEventRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.WebhookEvent{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
