package access

import (
	"testing"
	"time"

	"billing-app/internal/domain/subscriptions"

	"github.com/stretchr/testify/assert"
)

func TestComputeState(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(10 * 24 * time.Hour)
	past := now.Add(-10 * 24 * time.Hour)

	sub := func(status string, periodEnd *time.Time) *subscriptions.Subscription {
		return &subscriptions.Subscription{
			StripeSubscriptionID: "sub_1",
			Status:               status,
			CurrentPeriodEnd:     periodEnd,
		}
	}

	tests := []struct {
		name string
		sub  *subscriptions.Subscription
		want AccessState
	}{
		{"no subscription", nil, AccessLocked},
		{"empty provider id", &subscriptions.Subscription{}, AccessLocked},
		{"active", sub(subscriptions.StatusActive, &future), AccessFull},
		{"trialing", sub(subscriptions.StatusTrialing, &future), AccessTrial},
		{"past_due", sub(subscriptions.StatusPastDue, &future), AccessLimited},
		{"unpaid", sub(subscriptions.StatusUnpaid, &future), AccessLimited},
		{"canceled still paid through", sub(subscriptions.StatusCanceled, &future), AccessLimited},
		{"canceled period over", sub(subscriptions.StatusCanceled, &past), AccessLocked},
		{"canceled no period end", sub(subscriptions.StatusCanceled, nil), AccessLocked},
		{"incomplete_expired paid through", sub(subscriptions.StatusIncompleteExpired, &future), AccessLimited},
		{"incomplete_expired period over", sub(subscriptions.StatusIncompleteExpired, &past), AccessLocked},
		{"incomplete", sub(subscriptions.StatusIncomplete, &future), AccessLocked},
		{"unknown status", sub("paused", &future), AccessLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeState(now, tt.sub))
		})
	}
}

func TestAllows(t *testing.T) {
	assert.True(t, Allows(AccessTrial))
	assert.True(t, Allows(AccessFull))
	assert.True(t, Allows(AccessLimited))
	assert.False(t, Allows(AccessLocked))
}
