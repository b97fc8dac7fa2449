package payments

import (
	"strings"

	"billing-app/internal/domain/plans"

	"github.com/stripe/stripe-go/v75"
)

// NormalizeStatus collapses provider subscription statuses into the buckets
// the UI cares about. Display only; stored rows keep the verbatim value.
func NormalizeStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "":
		return "none"
	case "past_due", "unpaid":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return strings.TrimSpace(s)
	}
}

// ProviderInterval maps the local billing interval vocabulary onto Stripe's.
func ProviderInterval(interval string) string {
	if interval == plans.IntervalYearly {
		return string(stripe.PriceRecurringIntervalYear)
	}
	return string(stripe.PriceRecurringIntervalMonth)
}

// LocalInterval maps a Stripe price interval back to the local vocabulary.
func LocalInterval(interval stripe.PriceRecurringInterval) string {
	if interval == stripe.PriceRecurringIntervalYear {
		return plans.IntervalYearly
	}
	return plans.IntervalMonthly
}
