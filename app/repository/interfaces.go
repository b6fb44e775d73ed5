package repository

import (
	"errors"

	"github.com/ManuelReschke/HookFox/app/models"
)

// ErrEventNotFound is returned by lookups and updates when no event exists
// for the given id or reference, regardless of the backing store.
var ErrEventNotFound = errors.New("webhook event not found")

// WebhookEventUpdate carries the fields of a partial update. Nil fields are
// left untouched on the stored record.
type WebhookEventUpdate struct {
	Status       *string
	Error        *string
	ResponseTime *int64
}

// WebhookEventRepository defines the interface for webhook event persistence.
// Implementations must be safe for concurrent use: Create may never hand out
// the same id twice, and readers may never observe a partially written record.
type WebhookEventRepository interface {
	Create(event *models.WebhookEvent) error
	GetByID(id uint) (*models.WebhookEvent, error)
	// GetByReference returns the first match for a reference. References are
	// not unique across provider retries; which duplicate wins is unspecified.
	GetByReference(reference string) (*models.WebhookEvent, error)
	List(limit, offset int) ([]models.WebhookEvent, error)
	Update(id uint, update WebhookEventUpdate) (*models.WebhookEvent, error)
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
}
