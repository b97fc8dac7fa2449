package plans

import (
	"errors"
	"net/http"
	"strconv"

	"billing-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

type planBody struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PriceMonthly *int64   `json:"price_monthly"`
	PriceYearly  *int64   `json:"price_yearly"`
	Features     []string `json:"features"`
	MaxSeats     *int     `json:"max_seats"`
	IsActive     *bool    `json:"is_active"`
	IsPopular    *bool    `json:"is_popular"`
	SortOrder    *int     `json:"sort_order"`
}

// ListAllPlans is the admin view: every plan including deactivated ones, with
// provider ids visible.
func (h *Handler) ListAllPlans(c *gin.Context) {
	list, err := h.store.AllPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, p := range list {
		out = append(out, adminPlanResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// CreatePlan adds a catalog entry. The slug is derived from the name when
// not supplied. The plan is not purchasable until a sync pushed it to the
// provider.
func (h *Handler) CreatePlan(c *gin.Context) {
	var body planBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	slug := body.Slug
	if slug == "" {
		slug = plans.MakeSlug(body.Name)
	}
	if err := plans.ValidateSlug(slug); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taken, err := h.store.SlugTaken(slug, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check slug"})
		return
	}
	if taken {
		c.JSON(http.StatusConflict, gin.H{"error": "Slug already in use"})
		return
	}

	plan := plans.Plan{
		Slug:        slug,
		Name:        body.Name,
		Description: body.Description,
		Features:    plans.FeatureList(body.Features),
		MaxSeats:    body.MaxSeats,
		IsActive:    true,
	}
	if err := applyPrices(&plan, &body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.IsActive != nil {
		plan.IsActive = *body.IsActive
	}
	if body.IsPopular != nil {
		plan.IsPopular = *body.IsPopular
	}
	if body.SortOrder != nil {
		plan.SortOrder = *body.SortOrder
	}

	if err := h.store.CreatePlan(&plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, adminPlanResponse(plan))
}

// UpdatePlan edits catalog fields. Amount edits do NOT touch provider
// prices: synced price ids keep pointing at the old amounts until an admin
// clears them and re-syncs, because provider prices are immutable.
func (h *Handler) UpdatePlan(c *gin.Context) {
	plan, ok := h.planFromParam(c)
	if !ok {
		return
	}

	var body planBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if body.Slug != "" && body.Slug != plan.Slug {
		if err := plans.ValidateSlug(body.Slug); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		taken, err := h.store.SlugTaken(body.Slug, plan.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check slug"})
			return
		}
		if taken {
			c.JSON(http.StatusConflict, gin.H{"error": "Slug already in use"})
			return
		}
		plan.Slug = body.Slug
	}

	if body.Name != "" {
		plan.Name = body.Name
	}
	if body.Description != "" {
		plan.Description = body.Description
	}
	if err := applyPrices(plan, &body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Features != nil {
		plan.Features = plans.FeatureList(body.Features)
	}
	if body.MaxSeats != nil {
		plan.MaxSeats = body.MaxSeats
	}
	if body.IsActive != nil {
		plan.IsActive = *body.IsActive
	}
	if body.IsPopular != nil {
		plan.IsPopular = *body.IsPopular
	}
	if body.SortOrder != nil {
		plan.SortOrder = *body.SortOrder
	}

	if err := h.store.SavePlan(plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, adminPlanResponse(*plan))
}

// DeactivatePlan soft-deletes: the plan disappears from the pricing page but
// existing subscribers keep running on it. Provider state is never touched.
func (h *Handler) DeactivatePlan(c *gin.Context) {
	plan, ok := h.planFromParam(c)
	if !ok {
		return
	}

	if err := h.store.DeactivatePlan(plan.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deactivated"})
}

func applyPrices(plan *plans.Plan, body *planBody) error {
	if body.PriceMonthly != nil {
		if *body.PriceMonthly < 0 {
			return errors.New("price_monthly must not be negative")
		}
		plan.PriceMonthly = *body.PriceMonthly
	}
	if body.PriceYearly != nil {
		if *body.PriceYearly < 0 {
			return errors.New("price_yearly must not be negative")
		}
		plan.PriceYearly = *body.PriceYearly
	}
	return nil
}

func (h *Handler) planFromParam(c *gin.Context) (*plans.Plan, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan id"})
		return nil, false
	}

	plan, err := h.store.PlanByID(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan"})
		return nil, false
	}
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return nil, false
	}
	return plan, true
}
