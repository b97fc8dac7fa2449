package plans

import (
	"net/http"

	"billing-app/internal/billing"
	"billing-app/internal/domain/plans"
	"billing-app/internal/payments"
	"billing-app/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store  *store.Store
	syncer *billing.CatalogSyncer
	client *payments.Client
}

func NewHandler(st *store.Store, syncer *billing.CatalogSyncer, client *payments.Client) *Handler {
	return &Handler{store: st, syncer: syncer, client: client}
}

// ListPlans is the public pricing page feed: active plans only, in display
// order. Provider ids stay internal.
func (h *Handler) ListPlans(c *gin.Context) {
	list, err := h.store.ActivePlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, p := range list {
		out = append(out, planResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func planResponse(p plans.Plan) gin.H {
	return gin.H{
		"id":            p.ID,
		"slug":          p.Slug,
		"name":          p.Name,
		"description":   p.Description,
		"price_monthly": p.PriceMonthly,
		"price_yearly":  p.PriceYearly,
		"features":      p.Features,
		"max_seats":     p.MaxSeats,
		"is_popular":    p.IsPopular,
		"purchasable":   p.Purchasable(),
	}
}

func adminPlanResponse(p plans.Plan) gin.H {
	out := planResponse(p)
	out["is_active"] = p.IsActive
	out["sort_order"] = p.SortOrder
	out["stripe_product_id"] = p.StripeProductID
	out["stripe_price_monthly_id"] = p.StripePriceMonthlyID
	out["stripe_price_yearly_id"] = p.StripePriceYearlyID
	out["created_at"] = p.CreatedAt
	out["updated_at"] = p.UpdatedAt
	return out
}
