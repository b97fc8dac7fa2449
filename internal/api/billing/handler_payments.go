package billing

import (
	"net/http"

	"billing-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GetInvoices serves the local invoice mirror, newest first. The mirror is
// written by the webhook reconciler, so no provider round trip is needed.
func (h *Handler) GetInvoices(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoices, err := h.store.InvoicesForUser(userID, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load invoices"})
		return
	}

	out := make([]gin.H, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, invoiceResponse(inv))
	}
	c.JSON(http.StatusOK, out)
}

// ListPaymentMethods returns the user's stored cards straight from the
// provider. Users without a billing account simply have none.
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	methods, err := h.client.ListCardPaymentMethods(*user.StripeCustomerID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(methods))
	for _, pm := range methods {
		entry := gin.H{"id": pm.ID}
		if pm.Card != nil {
			entry["brand"] = pm.Card.Brand
			entry["last4"] = pm.Card.Last4
			entry["exp_month"] = pm.Card.ExpMonth
			entry["exp_year"] = pm.Card.ExpYear
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, out)
}

// SetDefaultPaymentMethod makes a stored card the default for future
// invoices.
func (h *Handler) SetDefaultPaymentMethod(c *gin.Context) {
	var body struct {
		PaymentMethodID string `json:"payment_method_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PaymentMethodID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing payment_method_id"})
		return
	}

	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No billing account yet (subscribe first)"})
		return
	}

	if err := h.client.SetDefaultPaymentMethod(*user.StripeCustomerID, body.PaymentMethodID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Default payment method updated"})
}

// DetachPaymentMethod removes a stored card. The id must belong to the
// caller's own customer; anything else is a 404.
func (h *Handler) DetachPaymentMethod(c *gin.Context) {
	pmID := c.Param("id")
	if pmID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing payment method id"})
		return
	}

	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
		return
	}

	methods, err := h.client.ListCardPaymentMethods(*user.StripeCustomerID)
	if err != nil {
		respondError(c, err)
		return
	}
	owned := false
	for _, pm := range methods {
		if pm.ID == pmID {
			owned = true
			break
		}
	}
	if !owned {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
		return
	}

	if err := h.client.DetachPaymentMethod(pmID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment method removed"})
}

func (h *Handler) requireUser(c *gin.Context) (*users.User, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return nil, false
	}

	user, err := h.store.UserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return nil, false
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return nil, false
	}
	return user, true
}
