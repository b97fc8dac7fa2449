package billing

import (
	"net/http"

	"billing-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

// CreateCheckoutSession opens a hosted checkout for the authenticated user.
// Holders of an active subscription get a 409 with code existing_subscription
// and should be sent to the change-plan flow instead.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var body struct {
		PlanID   uint   `json:"plan_id"`
		Interval string `json:"interval"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PlanID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid plan_id"})
		return
	}
	if body.Interval == "" {
		body.Interval = plans.IntervalMonthly
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	url, err := h.checkout.Start(userID, body.PlanID, body.Interval)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// CreateBillingPortal opens the provider-hosted billing portal. Only
// customers that went through a checkout have one.
func (h *Handler) CreateBillingPortal(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	user, err := h.store.UserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No billing account yet (subscribe first)"})
		return
	}

	portal, err := h.client.CreatePortalSession(*user.StripeCustomerID, h.portalReturnURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": portal.URL})
}
