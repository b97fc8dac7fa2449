package billing

import (
	"net/http"

	"billing-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

// ChangePlan moves the user's current subscription to another plan or
// interval with immediate proration. The local row is updated provisionally;
// the subscription-updated webhook delivers the authoritative state.
func (h *Handler) ChangePlan(c *gin.Context) {
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

	// Scoped to the caller's own subscription; the id is never client input.
	sub, err := h.store.SubscriptionForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}
	if sub == nil || sub.StripeSubscriptionID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No subscription to change. Start a checkout instead."})
		return
	}

	updated, err := h.changer.ChangePlan(sub.StripeSubscriptionID, body.PlanID, body.Interval)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Plan changed",
		"subscription": subscriptionResponse(updated),
	})
}
