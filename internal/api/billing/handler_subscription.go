package billing

import (
	"net/http"
	"time"

	"billing-app/internal/domain/access"
	"billing-app/internal/payments"

	"github.com/gin-gonic/gin"
)

// GetSubscription returns the user's latest subscription mirror plus the
// derived access state. Statuses in the row are the provider's verbatim
// values; "status" here is the normalized display bucket.
func (h *Handler) GetSubscription(c *gin.Context) {
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

	state := access.ComputeState(time.Now(), sub)
	if sub == nil {
		c.JSON(http.StatusOK, gin.H{
			"subscription": nil,
			"status":       payments.NormalizeStatus(""),
			"access":       state,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscription": subscriptionResponse(sub),
		"status":       payments.NormalizeStatus(sub.Status),
		"access":       state,
	})
}
