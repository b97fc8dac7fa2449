package subscriptions

import (
	"time"

	"billing-app/internal/domain/plans"
	"billing-app/internal/domain/users"
)

// Provider subscription statuses, stored verbatim. Transitions are never
// validated locally: the provider owns the lifecycle and webhook payloads are
// mirrored as-is.
const (
	StatusIncomplete        = "incomplete"
	StatusIncompleteExpired = "incomplete_expired"
	StatusTrialing          = "trialing"
	StatusActive            = "active"
	StatusPastDue           = "past_due"
	StatusUnpaid            = "unpaid"
	StatusCanceled          = "canceled"
)

// Subscription mirrors one provider subscription. Rows are created only by
// the webhook reconciler (checkout completion); user-facing flows may update
// existing rows provisionally but never insert.
type Subscription struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;index:idx_subscriptions_user_id"`
	User   users.User

	PlanID *uint
	Plan   *plans.Plan
	// Denormalized copy of Plan.Slug, kept in sync whenever PlanID changes.
	PlanSlug string `gorm:"column:plan_slug"`

	StripeSubscriptionID string `gorm:"column:stripe_subscription_id;not null;uniqueIndex:idx_subscriptions_stripe_subscription_id"`
	Status               string `gorm:"not null"`
	BillingInterval      string `gorm:"column:billing_interval;not null;default:'monthly'"`

	CurrentPeriodStart *time.Time `gorm:"column:current_period_start"`
	CurrentPeriodEnd   *time.Time `gorm:"column:current_period_end"`
	CancelAtPeriodEnd  bool       `gorm:"column:cancel_at_period_end;not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaidThrough reports whether the current period still covers the given moment.
func (s *Subscription) PaidThrough(now time.Time) bool {
	return s.CurrentPeriodEnd != nil && now.Before(*s.CurrentPeriodEnd)
}
