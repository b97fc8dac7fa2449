package admin

import (
	"net/http"
	"strconv"
	"time"

	"billing-app/internal/domain/subscriptions"
	"billing-app/internal/domain/users"
	"billing-app/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *store.Store
}

func NewHandler(st *store.Store) *Handler {
	return &Handler{store: st}
}

type AdminUser struct {
	ID                 uint       `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Role               string     `json:"role"`
	StripeCustomerID   *string    `json:"stripe_customer_id,omitempty"`
	PlanSlug           string     `json:"plan_slug,omitempty"`
	SubscriptionStatus string     `json:"subscription_status,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type AdminInvoice struct {
	ID              uint   `json:"id"`
	Email           string `json:"email"`
	StripeInvoiceID string `json:"stripe_invoice_id"`
	Status          string `json:"status"`
	AmountDue       int64  `json:"amount_due"`
	AmountPaid      int64  `json:"amount_paid"`
	Currency        string `json:"currency"`
	CreatedAt       string `json:"created_at"`
}

type AdminStats struct {
	TotalUsers           int64            `json:"total_users"`
	TotalRevenue         int64            `json:"total_revenue"`
	RecentRevenue        int64            `json:"recent_revenue"`
	ActiveSubscriptions  int64            `json:"active_subscriptions"`
	PastDueSubscriptions int64            `json:"past_due_subscriptions"`
	SubscriptionsPerPlan map[string]int64 `json:"subscriptions_per_plan"`
	FailedWebhookEvents  int64            `json:"failed_webhook_events"`
}

// Dashboard aggregates the numbers the admin landing page shows. Revenue is
// in minor units, summed from paid invoices; the failed-events count is the
// webhook dead-letter badge.
func (h *Handler) Dashboard(c *gin.Context) {
	var stats AdminStats
	var err error

	if stats.TotalUsers, err = h.store.CountUsers(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	if stats.TotalRevenue, err = h.store.PaidRevenue(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	if stats.RecentRevenue, err = h.store.PaidRevenueSince(thirtyDaysAgo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	if stats.ActiveSubscriptions, err = h.store.CountSubscriptionsByStatus(subscriptions.StatusActive); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	if stats.PastDueSubscriptions, err = h.store.CountSubscriptionsByStatus(subscriptions.StatusPastDue); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	if stats.SubscriptionsPerPlan, err = h.store.SubscriptionCountsByPlan(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	if stats.FailedWebhookEvents, err = h.store.CountFailedWebhookEvents(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListUsers returns every user with their current subscription summary.
func (h *Handler) ListUsers(c *gin.Context) {
	userList, err := h.store.AllUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	subList, err := h.store.AllSubscriptions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	// Sorted newest first, so the first row per user is the current one.
	latest := make(map[uint]*subscriptions.Subscription, len(subList))
	for i := range subList {
		sub := &subList[i]
		if _, seen := latest[sub.UserID]; !seen {
			latest[sub.UserID] = sub
		}
	}

	out := make([]AdminUser, 0, len(userList))
	for _, u := range userList {
		out = append(out, adminUserRow(u, latest[u.ID]))
	}
	c.JSON(http.StatusOK, out)
}

// GetUserDetails returns one user with subscription and billing history.
func (h *Handler) GetUserDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	user, err := h.store.UserByID(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	sub, err := h.store.SubscriptionForUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}

	invoices, err := h.store.InvoicesForUser(user.ID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load invoices"})
		return
	}

	invoiceRows := make([]AdminInvoice, 0, len(invoices))
	for _, inv := range invoices {
		invoiceRows = append(invoiceRows, adminInvoiceRow(inv, user.Email))
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     adminUserRow(*user, sub),
		"invoices": invoiceRows,
	})
}

// ListInvoices is the global billing history, newest first.
func (h *Handler) ListInvoices(c *gin.Context) {
	invoices, err := h.store.AllInvoices(200)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load invoices"})
		return
	}

	out := make([]AdminInvoice, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, adminInvoiceRow(inv, inv.User.Email))
	}
	c.JSON(http.StatusOK, out)
}

func adminUserRow(u users.User, sub *subscriptions.Subscription) AdminUser {
	row := AdminUser{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		StripeCustomerID: u.StripeCustomerID,
		CreatedAt:        u.CreatedAt,
	}
	if sub != nil {
		row.PlanSlug = sub.PlanSlug
		row.SubscriptionStatus = sub.Status
		row.CurrentPeriodEnd = sub.CurrentPeriodEnd
	}
	return row
}

func adminInvoiceRow(inv subscriptions.Invoice, email string) AdminInvoice {
	return AdminInvoice{
		ID:              inv.ID,
		Email:           email,
		StripeInvoiceID: inv.StripeInvoiceID,
		Status:          inv.Status,
		AmountDue:       inv.AmountDue,
		AmountPaid:      inv.AmountPaid,
		Currency:        inv.Currency,
		CreatedAt:       inv.CreatedAt.Format("2006-01-02 15:04"),
	}
}
