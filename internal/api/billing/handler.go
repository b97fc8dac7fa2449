package billing

import (
	"errors"
	"net/http"

	"billing-app/internal/billing"
	"billing-app/internal/domain/subscriptions"
	"billing-app/internal/payments"
	"billing-app/internal/store"

	"github.com/gin-gonic/gin"
)

// Handler serves the user-facing billing endpoints. Everything it needs is
// injected at construction; there is no package-level client or DB handle.
type Handler struct {
	store           *store.Store
	client          *payments.Client
	checkout        *billing.CheckoutService
	changer         *billing.PlanChanger
	portalReturnURL string
}

func NewHandler(st *store.Store, client *payments.Client, checkout *billing.CheckoutService, changer *billing.PlanChanger, portalReturnURL string) *Handler {
	return &Handler{
		store:           st,
		client:          client,
		checkout:        checkout,
		changer:         changer,
		portalReturnURL: portalReturnURL,
	}
}

// respondError translates service sentinels into HTTP statuses. The conflict
// answers carry a machine-readable code so the frontend can branch without
// grepping messages.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, payments.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Billing is not configured"})
	case errors.Is(err, billing.ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Interval must be monthly or yearly"})
	case errors.Is(err, billing.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
	case errors.Is(err, billing.ErrSubscriptionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
	case errors.Is(err, billing.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
	case errors.Is(err, billing.ErrPlanNotPurchasable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "This plan is not ready for checkout yet",
			"code":  "plan_not_ready",
		})
	case errors.Is(err, billing.ErrExistingSubscription):
		c.JSON(http.StatusConflict, gin.H{
			"error": "You already have an active subscription. Change your plan instead.",
			"code":  "existing_subscription",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Billing operation failed", "details": err.Error()})
	}
}

func subscriptionResponse(sub *subscriptions.Subscription) gin.H {
	return gin.H{
		"id":                   sub.ID,
		"plan_id":              sub.PlanID,
		"plan_slug":            sub.PlanSlug,
		"status":               sub.Status,
		"billing_interval":     sub.BillingInterval,
		"current_period_start": sub.CurrentPeriodStart,
		"current_period_end":   sub.CurrentPeriodEnd,
		"cancel_at_period_end": sub.CancelAtPeriodEnd,
	}
}

func invoiceResponse(inv subscriptions.Invoice) gin.H {
	return gin.H{
		"id":                 inv.ID,
		"stripe_invoice_id":  inv.StripeInvoiceID,
		"status":             inv.Status,
		"amount_due":         inv.AmountDue,
		"amount_paid":        inv.AmountPaid,
		"currency":           inv.Currency,
		"invoice_pdf":        inv.InvoicePDF,
		"hosted_invoice_url": inv.HostedInvoiceURL,
		"period_start":       inv.PeriodStart,
		"period_end":         inv.PeriodEnd,
		"created_at":         inv.CreatedAt,
	}
}
