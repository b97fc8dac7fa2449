package payments

import (
	"testing"

	"billing-app/internal/domain/plans"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v75"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "none"},
		{"  ", "none"},
		{"active", "active"},
		{"trialing", "trialing"},
		{"past_due", "past_due"},
		{"unpaid", "past_due"},
		{"canceled", "canceled"},
		{"incomplete_expired", "canceled"},
		{"incomplete", "incomplete"},
		{" active ", "active"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeStatus(tt.in), "NormalizeStatus(%q)", tt.in)
	}
}

func TestIntervalMapping(t *testing.T) {
	assert.Equal(t, "month", ProviderInterval(plans.IntervalMonthly))
	assert.Equal(t, "year", ProviderInterval(plans.IntervalYearly))
	// Anything unexpected charges monthly rather than yearly.
	assert.Equal(t, "month", ProviderInterval("weekly"))

	assert.Equal(t, plans.IntervalMonthly, LocalInterval(stripe.PriceRecurringIntervalMonth))
	assert.Equal(t, plans.IntervalYearly, LocalInterval(stripe.PriceRecurringIntervalYear))
}
