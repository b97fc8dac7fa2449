package middleware

import (
	"net/http"
	"time"

	"billing-app/internal/domain/access"
	"billing-app/internal/store"

	"github.com/gin-gonic/gin"
)

// RequireActiveSubscription gates routes on the derived access state. Locked
// users get a 402; limited ones (past_due, still paid through) pass, the
// feature layer decides what limited means.
func RequireActiveSubscription(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
			return
		}

		sub, err := st.SubscriptionForUser(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
			return
		}

		state := access.ComputeState(time.Now(), sub)
		if !access.Allows(state) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "An active subscription is required",
				"code":  "subscription_required",
			})
			return
		}

		c.Next()
	}
}
