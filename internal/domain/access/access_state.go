package access

import (
	"time"

	"billing-app/internal/domain/subscriptions"
)

// Effective access for UI/product: trial|full|limited|locked.
//
// Gating is a pure consumer of the stored subscription status. The webhook
// reconciler mirrors the provider verbatim and never decides access; only
// this function does.
func ComputeState(now time.Time, sub *subscriptions.Subscription) AccessState {
	// No subscription at all
	if sub == nil || sub.StripeSubscriptionID == "" {
		return AccessLocked
	}

	switch sub.Status {
	case subscriptions.StatusActive:
		return AccessFull

	case subscriptions.StatusTrialing:
		return AccessTrial

	case subscriptions.StatusPastDue, subscriptions.StatusUnpaid:
		// Payment trouble: keep the lights on but restricted while the
		// provider retries collection.
		return AccessLimited

	case subscriptions.StatusCanceled, subscriptions.StatusIncompleteExpired:
		// Access until the paid-through end date, then locked.
		if sub.PaidThrough(now) {
			return AccessLimited
		}
		return AccessLocked

	default:
		// incomplete and anything unknown
		return AccessLocked
	}
}
