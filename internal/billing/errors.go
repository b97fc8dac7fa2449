package billing

import "errors"

// Sentinel errors callers branch on with errors.Is. HTTP handlers translate
// them to status codes; the webhook pipeline records them on the event log
// instead of failing the delivery.
var (
	ErrPlanNotFound         = errors.New("plan not found")
	ErrPlanNotPurchasable   = errors.New("plan has no synced prices yet")
	ErrInvalidInterval      = errors.New("billing interval must be monthly or yearly")
	ErrUserNotFound         = errors.New("user not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrExistingSubscription is the checkout conflict signal: the customer
	// already has an active provider subscription and must use the
	// change-plan flow instead.
	ErrExistingSubscription = errors.New("user already has an active subscription")

	// Reconciler drop causes. Both are recorded on the webhook event log and
	// acknowledged with a 200 so the provider does not retry forever.
	ErrMissingMetadata     = errors.New("event is missing required metadata")
	ErrUnknownSubscription = errors.New("event references an unknown subscription")
)
