package subscriptions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatusRankOrdering(t *testing.T) {
	// Late or replayed webhooks may only move an invoice forward.
	assert.Less(t, InvoiceStatusRank(InvoiceStatusDraft), InvoiceStatusRank(InvoiceStatusOpen))
	assert.Less(t, InvoiceStatusRank(InvoiceStatusOpen), InvoiceStatusRank(InvoiceStatusVoid))
	assert.Less(t, InvoiceStatusRank(InvoiceStatusOpen), InvoiceStatusRank(InvoiceStatusUncollectible))
	assert.Less(t, InvoiceStatusRank(InvoiceStatusVoid), InvoiceStatusRank(InvoiceStatusPaid))
	assert.Less(t, InvoiceStatusRank(InvoiceStatusUncollectible), InvoiceStatusRank(InvoiceStatusPaid))

	// Unknown statuses rank with draft so they can never displace paid.
	assert.Equal(t, InvoiceStatusRank(InvoiceStatusDraft), InvoiceStatusRank("something_new"))
	assert.Equal(t, InvoiceStatusRank(InvoiceStatusDraft), InvoiceStatusRank(""))
}

func TestPaidThrough(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.True(t, (&Subscription{CurrentPeriodEnd: &future}).PaidThrough(now))
	assert.False(t, (&Subscription{CurrentPeriodEnd: &past}).PaidThrough(now))
	assert.False(t, (&Subscription{CurrentPeriodEnd: &now}).PaidThrough(now))
	assert.False(t, (&Subscription{}).PaidThrough(now))
}
