package subscriptions

import "time"

// WebhookEvent is the receipt log for provider webhooks: one row per provider
// event id. It deduplicates redeliveries and keeps failed payloads
// inspectable after the endpoint has already acknowledged them with a 200.
type WebhookEvent struct {
	ID            uint   `gorm:"primaryKey"`
	StripeEventID string `gorm:"column:stripe_event_id;not null;uniqueIndex:idx_webhook_events_stripe_event_id"`
	Type          string `gorm:"not null;index:idx_webhook_events_type"`
	PayloadJSON   string `gorm:"column:payload_json;type:text"`

	ProcessedAt     *time.Time `gorm:"column:processed_at"`
	ProcessingError string     `gorm:"column:processing_error;type:text"`

	CreatedAt time.Time
}

// Failed reports whether the last processing attempt recorded an error.
func (e *WebhookEvent) Failed() bool {
	return e.ProcessingError != ""
}
