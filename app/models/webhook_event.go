package models

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	WebhookStatusPending   = "Pending"
	WebhookStatusProcessed = "Processed"
	WebhookStatusFailed    = "Failed"
)

// WebhookEvent records a single provider delivery, valid or not. The id and
// timestamp are assigned by the store at insertion and never change; status
// transitions at most once after creation.
type WebhookEvent struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	EventType      string          `gorm:"type:varchar(100);not null;index" json:"eventType"`
	Reference      string          `gorm:"type:varchar(191);not null;index" json:"reference"`
	Status         string          `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	Timestamp      time.Time       `gorm:"autoCreateTime;index" json:"timestamp"`
	Payload        json.RawMessage `gorm:"type:longtext;not null" json:"payload"`
	SignatureValid bool            `gorm:"default:false" json:"signatureValid"`
	Error          *string         `gorm:"type:text" json:"error"`
	ResponseTime   *int64          `json:"responseTime"`
}

// WebhookEventListQuery carries the pagination parameters for the event log.
type WebhookEventListQuery struct {
	Limit  int `query:"limit" validate:"gte=0,lte=1000"`
	Offset int `query:"offset" validate:"gte=0"`
}

func (q *WebhookEventListQuery) Validate() error {
	v := validator.New()

	return v.Struct(q)
}
