package users

import (
	"net/http"
	"time"

	"billing-app/internal/domain/access"
	"billing-app/internal/domain/plans"
	"billing-app/internal/domain/subscriptions"
	"billing-app/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *store.Store
}

func NewHandler(st *store.Store) *Handler {
	return &Handler{store: st}
}

type MeResponse struct {
	User         UserDTO          `json:"user"`
	Subscription *SubscriptionDTO `json:"subscription"`
	Plan         *PlanDTO         `json:"plan"`
	Access       AccessDTO        `json:"access"`
}

type UserDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SubscriptionDTO struct {
	Status             string     `json:"status"`
	BillingInterval    string     `json:"billing_interval"`
	CurrentPeriodStart *time.Time `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
}

type PlanDTO struct {
	ID       uint   `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	MaxSeats *int   `json:"max_seats"`
}

type AccessDTO struct {
	State        string   `json:"state"`
	Capabilities []string `json:"capabilities"`
}

// Me returns the caller's identity together with the current subscription
// mirror and the derived access state the frontend gates on.
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.store.UserByID(userID)
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

	state := access.ComputeState(time.Now(), sub)

	var plan *plans.Plan
	if sub != nil {
		plan = sub.Plan
	}

	resp := MeResponse{
		User: UserDTO{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
		Subscription: buildSubscriptionDTO(sub),
		Plan:         buildPlanDTO(plan),
		Access: AccessDTO{
			State:        string(state),
			Capabilities: access.CapabilitiesFor(state, plan),
		},
	}

	c.JSON(http.StatusOK, resp)
}

func buildSubscriptionDTO(sub *subscriptions.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}
	return &SubscriptionDTO{
		Status:             sub.Status,
		BillingInterval:    sub.BillingInterval,
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}
}

func buildPlanDTO(plan *plans.Plan) *PlanDTO {
	if plan == nil {
		return nil
	}
	return &PlanDTO{
		ID:       plan.ID,
		Slug:     plan.Slug,
		Name:     plan.Name,
		MaxSeats: plan.MaxSeats,
	}
}
