package subscriptions

import (
	"time"

	"billing-app/internal/domain/users"
)

const (
	InvoiceStatusDraft         = "draft"
	InvoiceStatusOpen          = "open"
	InvoiceStatusUncollectible = "uncollectible"
	InvoiceStatusVoid          = "void"
	InvoiceStatusPaid          = "paid"
)

// InvoiceStatusRank orders invoice statuses so replayed or late webhooks can
// only move an invoice forward. paid is terminal.
func InvoiceStatusRank(status string) int {
	switch status {
	case InvoiceStatusOpen:
		return 1
	case InvoiceStatusUncollectible, InvoiceStatusVoid:
		return 2
	case InvoiceStatusPaid:
		return 3
	default: // draft and anything unknown
		return 0
	}
}

type Invoice struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;index:idx_invoices_user_id"`
	User   users.User

	StripeInvoiceID      string  `gorm:"column:stripe_invoice_id;not null;uniqueIndex:idx_invoices_stripe_invoice_id"`
	StripeSubscriptionID *string `gorm:"column:stripe_subscription_id;index:idx_invoices_stripe_subscription_id"`

	AmountDue  int64  `gorm:"column:amount_due;not null;default:0"`
	AmountPaid int64  `gorm:"column:amount_paid;not null;default:0"`
	Currency   string `gorm:"type:varchar(10);not null;default:'usd'"`
	Status     string `gorm:"not null"`

	InvoicePDF       *string `gorm:"column:invoice_pdf"`
	HostedInvoiceURL *string `gorm:"column:hosted_invoice_url"`

	PeriodStart *time.Time `gorm:"column:period_start"`
	PeriodEnd   *time.Time `gorm:"column:period_end"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
