package plans

import (
	"errors"
	"net/http"
	"strconv"

	"billing-app/internal/billing"

	"github.com/gin-gonic/gin"
)

// SyncPlan pushes one plan to the provider catalog: product plus whichever
// recurring prices are still missing. Safe to call repeatedly.
func (h *Handler) SyncPlan(c *gin.Context) {
	if !h.client.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Billing is not configured"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan id"})
		return
	}

	plan, err := h.syncer.SyncPlan(uint(id))
	if err != nil {
		if errors.Is(err, billing.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync plan", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Plan synced",
		"plan":    adminPlanResponse(*plan),
	})
}

// SyncAllPlans walks every active plan. Already purchasable plans are
// skipped; a failing plan is reported but does not stop the run.
func (h *Handler) SyncAllPlans(c *gin.Context) {
	if !h.client.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Billing is not configured"})
		return
	}

	report, err := h.syncer.SyncAllPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync plans", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
