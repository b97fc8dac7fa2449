package store

import (
	"errors"

	"billing-app/internal/domain/subscriptions"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) SubscriptionByStripeID(subscriptionID string) (*subscriptions.Subscription, error) {
	if subscriptionID == "" {
		return nil, nil
	}
	var sub subscriptions.Subscription
	err := s.db.Preload("Plan").
		Where("stripe_subscription_id = ?", subscriptionID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// SubscriptionForUser returns the user's most recent subscription row, the one
// every consumer (access gating, /me, plan change) treats as current.
func (s *Store) SubscriptionForUser(userID uint) (*subscriptions.Subscription, error) {
	var sub subscriptions.Subscription
	err := s.db.Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpsertSubscription inserts or refreshes the row keyed by the provider
// subscription id. Used by the reconciler so redelivered checkout events stay
// idempotent.
func (s *Store) UpsertSubscription(sub *subscriptions.Subscription) error {
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "stripe_subscription_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "plan_id", "plan_slug", "status", "billing_interval",
			"current_period_start", "current_period_end", "cancel_at_period_end",
			"updated_at",
		}),
	}).Create(sub).Error
}

func (s *Store) SaveSubscription(sub *subscriptions.Subscription) error {
	return s.db.Save(sub).Error
}

func (s *Store) AllSubscriptions() ([]subscriptions.Subscription, error) {
	var list []subscriptions.Subscription
	err := s.db.Preload("Plan").Order("created_at DESC").Find(&list).Error
	return list, err
}

// CountSubscriptionsByStatus powers the admin dashboard breakdown.
func (s *Store) CountSubscriptionsByStatus(status string) (int64, error) {
	var count int64
	err := s.db.Model(&subscriptions.Subscription{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// SubscriptionCountsByPlan buckets running subscriptions (active or
// trialing) by plan slug.
func (s *Store) SubscriptionCountsByPlan() (map[string]int64, error) {
	type row struct {
		PlanSlug string
		Count    int64
	}
	var rows []row
	err := s.db.Model(&subscriptions.Subscription{}).
		Select("plan_slug, COUNT(id) as count").
		Where("status IN ?", []string{subscriptions.StatusActive, subscriptions.StatusTrialing}).
		Group("plan_slug").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		slug := r.PlanSlug
		if slug == "" {
			slug = "unknown"
		}
		out[slug] = r.Count
	}
	return out, nil
}
