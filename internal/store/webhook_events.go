package store

import (
	"errors"
	"time"

	"billing-app/internal/domain/subscriptions"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateWebhookEventIfAbsent records the receipt of a provider event exactly
// once. Returns (false, existing, nil) when the event id was already seen, so
// the caller can skip redeliveries that were processed cleanly.
func (s *Store) CreateWebhookEventIfAbsent(ev *subscriptions.WebhookEvent) (bool, *subscriptions.WebhookEvent, error) {
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stripe_event_id"}},
		DoNothing: true,
	}).Create(ev)
	if res.Error != nil {
		return false, nil, res.Error
	}
	if res.RowsAffected > 0 {
		return true, ev, nil
	}

	existing, err := s.WebhookEventByStripeID(ev.StripeEventID)
	if err != nil {
		return false, nil, err
	}
	return false, existing, nil
}

func (s *Store) WebhookEventByStripeID(eventID string) (*subscriptions.WebhookEvent, error) {
	var ev subscriptions.WebhookEvent
	err := s.db.Where("stripe_event_id = ?", eventID).First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// MarkWebhookEventProcessed stamps the processing outcome. A nil processing
// error clears any previous failure (redelivery that finally succeeded).
func (s *Store) MarkWebhookEventProcessed(id uint, processingErr error) error {
	updates := map[string]interface{}{
		"processed_at":     time.Now(),
		"processing_error": "",
	}
	if processingErr != nil {
		updates["processing_error"] = processingErr.Error()
	}
	return s.db.Model(&subscriptions.WebhookEvent{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// WebhookEvents lists received events newest first, optionally only the ones
// whose processing recorded an error.
func (s *Store) WebhookEvents(onlyFailed bool, limit int) ([]subscriptions.WebhookEvent, error) {
	var list []subscriptions.WebhookEvent
	q := s.db.Order("created_at DESC")
	if onlyFailed {
		q = q.Where("processing_error <> ''")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&list).Error
	return list, err
}

// CountFailedWebhookEvents powers the admin dashboard's dead-letter badge.
func (s *Store) CountFailedWebhookEvents() (int64, error) {
	var count int64
	err := s.db.Model(&subscriptions.WebhookEvent{}).
		Where("processing_error <> ''").
		Count(&count).Error
	return count, err
}
