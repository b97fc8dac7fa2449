package billing

import (
	"fmt"
	"log"

	"billing-app/internal/domain/plans"
	"billing-app/internal/domain/users"
	"billing-app/internal/payments"

	"github.com/stripe/stripe-go/v75"
)

type CheckoutStore interface {
	PlanByID(id uint) (*plans.Plan, error)
	UserByID(id uint) (*users.User, error)
	SetStripeCustomerID(userID uint, customerID string) error
}

type CheckoutProvider interface {
	CreateCustomer(userID uint, email, name string) (*stripe.Customer, error)
	ListActiveSubscriptions(customerID string) ([]*stripe.Subscription, error)
	CancelNow(subscriptionID string) (*stripe.Subscription, error)
	CreateCheckoutSession(p payments.CheckoutParams) (*stripe.CheckoutSession, error)
}

// CheckoutService initiates hosted checkouts. It never writes a subscription
// row: the row appears when the completion webhook lands.
type CheckoutService struct {
	store      CheckoutStore
	provider   CheckoutProvider
	successURL string
	cancelURL  string
}

func NewCheckoutService(store CheckoutStore, provider CheckoutProvider, successURL, cancelURL string) *CheckoutService {
	return &CheckoutService{
		store:      store,
		provider:   provider,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// Start opens a hosted checkout for the user and returns its URL.
//
// The customer is resolved or created first, then checked for an existing
// active subscription: holders get ErrExistingSubscription (the change-plan
// flow covers them) after duplicate subscriptions beyond the newest were
// cleaned up opportunistically.
func (s *CheckoutService) Start(userID, planID uint, interval string) (string, error) {
	if !plans.ValidInterval(interval) {
		return "", ErrInvalidInterval
	}

	plan, err := s.store.PlanByID(planID)
	if err != nil {
		return "", fmt.Errorf("load plan %d: %w", planID, err)
	}
	if plan == nil || !plan.IsActive {
		return "", fmt.Errorf("%w: id %d", ErrPlanNotFound, planID)
	}
	if !plan.Purchasable() {
		return "", fmt.Errorf("%w: plan %s needs a catalog sync", ErrPlanNotPurchasable, plan.Slug)
	}

	user, err := s.store.UserByID(userID)
	if err != nil {
		return "", fmt.Errorf("load user %d: %w", userID, err)
	}
	if user == nil {
		return "", fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
	}

	customerID, err := s.ensureCustomer(user)
	if err != nil {
		return "", err
	}

	active, err := s.provider.ListActiveSubscriptions(customerID)
	if err != nil {
		return "", fmt.Errorf("list active subscriptions: %w", err)
	}
	if len(active) > 0 {
		s.cancelAllButNewest(active)
		return "", ErrExistingSubscription
	}

	session, err := s.provider.CreateCheckoutSession(payments.CheckoutParams{
		CustomerID: customerID,
		PriceID:    plan.PriceIDFor(interval),
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
		UserID:     user.ID,
		PlanID:     plan.ID,
		Interval:   interval,
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	return session.URL, nil
}

// CleanupDuplicateSubscriptions cancels every active provider subscription of
// the customer except the newest. Returns the id kept (or "" when none were
// active) and how many were canceled.
func (s *CheckoutService) CleanupDuplicateSubscriptions(customerID string) (string, int, error) {
	active, err := s.provider.ListActiveSubscriptions(customerID)
	if err != nil {
		return "", 0, fmt.Errorf("list active subscriptions: %w", err)
	}
	if len(active) == 0 {
		return "", 0, nil
	}
	return active[0].ID, s.cancelAllButNewest(active), nil
}

// cancelAllButNewest keeps index 0 (newest first) and cancels the rest.
// Best effort: a failed cancel is logged and skipped.
func (s *CheckoutService) cancelAllButNewest(active []*stripe.Subscription) int {
	canceled := 0
	for _, dup := range active[1:] {
		if _, err := s.provider.CancelNow(dup.ID); err != nil {
			log.Printf("❌ billing: cancel duplicate subscription %s: %v", dup.ID, err)
			continue
		}
		log.Printf("✅ billing: canceled duplicate subscription %s", dup.ID)
		canceled++
	}
	return canceled
}

func (s *CheckoutService) ensureCustomer(user *users.User) (string, error) {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}

	cus, err := s.provider.CreateCustomer(user.ID, user.Email, user.Name)
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	if err := s.store.SetStripeCustomerID(user.ID, cus.ID); err != nil {
		return "", fmt.Errorf("store customer id: %w", err)
	}
	return cus.ID, nil
}
