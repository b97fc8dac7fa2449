package billing

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CancelSubscription schedules cancellation at the period end. Access keeps
// running until then; the deletion webhook flips the final status.
func (h *Handler) CancelSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	sub, err := h.store.SubscriptionForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}
	if sub == nil || sub.StripeSubscriptionID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No subscription to cancel"})
		return
	}

	updated, err := h.changer.Cancel(sub.StripeSubscriptionID)
	if err != nil {
		respondError(c, err)
		return
	}

	// While we are here, sweep stray duplicate subscriptions on the
	// customer. Best effort only; the cancellation above already succeeded.
	h.cleanupDuplicates(userID)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Subscription will cancel at the period end",
		"subscription": subscriptionResponse(updated),
	})
}

// ReactivateSubscription reverts a pending cancellation before the period
// runs out.
func (h *Handler) ReactivateSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	sub, err := h.store.SubscriptionForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}
	if sub == nil || sub.StripeSubscriptionID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No subscription to reactivate"})
		return
	}
	if !sub.CancelAtPeriodEnd {
		c.JSON(http.StatusOK, gin.H{
			"message":      "Subscription is not scheduled for cancellation",
			"subscription": subscriptionResponse(sub),
		})
		return
	}

	updated, err := h.changer.Reactivate(sub.StripeSubscriptionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Cancellation reverted",
		"subscription": subscriptionResponse(updated),
	})
}

func (h *Handler) cleanupDuplicates(userID uint) {
	user, err := h.store.UserByID(userID)
	if err != nil || user == nil || user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		return
	}
	if _, n, err := h.checkout.CleanupDuplicateSubscriptions(*user.StripeCustomerID); err == nil && n > 0 {
		log.Printf("✅ billing: swept %d duplicate subscriptions for user %d", n, userID)
	}
}
