package billing

import (
	"fmt"

	"billing-app/internal/domain/plans"
	"billing-app/internal/domain/subscriptions"
	"billing-app/internal/payments"

	"github.com/stripe/stripe-go/v75"
)

type PlanChangeStore interface {
	PlanByID(id uint) (*plans.Plan, error)
	SubscriptionByStripeID(subscriptionID string) (*subscriptions.Subscription, error)
	SaveSubscription(sub *subscriptions.Subscription) error
}

type PlanChangeProvider interface {
	GetSubscription(subscriptionID string) (*stripe.Subscription, error)
	ChangeSubscriptionPrice(subscriptionID, itemID, priceID string, metadata map[string]string) (*stripe.Subscription, error)
	SetCancelAtPeriodEnd(subscriptionID string, cancel bool) (*stripe.Subscription, error)
}

// PlanChanger mutates an EXISTING subscription on the provider and mirrors
// the result locally at the provisional tier (see package doc). It never
// creates rows.
type PlanChanger struct {
	store    PlanChangeStore
	provider PlanChangeProvider
}

func NewPlanChanger(store PlanChangeStore, provider PlanChangeProvider) *PlanChanger {
	return &PlanChanger{store: store, provider: provider}
}

// ChangePlan swaps the subscription's priced item to the target plan's price
// for the given interval, prorating immediately, and tags the subscription
// with the new plan linkage so later webhooks resolve it without a price
// match. The local row is updated optimistically; customer.subscription.updated
// delivers the authoritative values.
func (p *PlanChanger) ChangePlan(subscriptionID string, planID uint, interval string) (*subscriptions.Subscription, error) {
	if !plans.ValidInterval(interval) {
		return nil, ErrInvalidInterval
	}

	local, err := p.store.SubscriptionByStripeID(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("load subscription %s: %w", subscriptionID, err)
	}
	if local == nil {
		return nil, fmt.Errorf("%w: %s", ErrSubscriptionNotFound, subscriptionID)
	}

	plan, err := p.store.PlanByID(planID)
	if err != nil {
		return nil, fmt.Errorf("load plan %d: %w", planID, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: id %d", ErrPlanNotFound, planID)
	}

	priceID := plan.PriceIDFor(interval)
	if priceID == "" {
		return nil, fmt.Errorf("%w: plan %s has no %s price", ErrPlanNotPurchasable, plan.Slug, interval)
	}

	sub, err := p.provider.GetSubscription(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("fetch subscription %s: %w", subscriptionID, err)
	}
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return nil, fmt.Errorf("subscription %s has no price item", subscriptionID)
	}

	item := sub.Items.Data[0]
	if item.Price.ID == priceID {
		// Already on the target price, nothing to change.
		return local, nil
	}

	updated, err := p.provider.ChangeSubscriptionPrice(
		sub.ID,
		item.ID,
		priceID,
		payments.LinkageMetadata(local.UserID, plan.ID, interval),
	)
	if err != nil {
		return nil, fmt.Errorf("change subscription price: %w", err)
	}

	local.PlanID = &plan.ID
	local.PlanSlug = plan.Slug
	local.BillingInterval = interval
	local.Status = string(updated.Status)
	local.CurrentPeriodStart = unixTime(updated.CurrentPeriodStart)
	local.CurrentPeriodEnd = unixTime(updated.CurrentPeriodEnd)
	local.CancelAtPeriodEnd = updated.CancelAtPeriodEnd

	if err := p.store.SaveSubscription(local); err != nil {
		return nil, fmt.Errorf("save subscription %s: %w", subscriptionID, err)
	}
	return local, nil
}

// Cancel schedules cancellation at the period end. The subscription keeps
// running until then; the deletion webhook flips the final status.
func (p *PlanChanger) Cancel(subscriptionID string) (*subscriptions.Subscription, error) {
	return p.setCancelFlag(subscriptionID, true)
}

// Reactivate clears a pending cancellation before the period runs out.
func (p *PlanChanger) Reactivate(subscriptionID string) (*subscriptions.Subscription, error) {
	return p.setCancelFlag(subscriptionID, false)
}

func (p *PlanChanger) setCancelFlag(subscriptionID string, cancel bool) (*subscriptions.Subscription, error) {
	local, err := p.store.SubscriptionByStripeID(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("load subscription %s: %w", subscriptionID, err)
	}
	if local == nil {
		return nil, fmt.Errorf("%w: %s", ErrSubscriptionNotFound, subscriptionID)
	}

	updated, err := p.provider.SetCancelAtPeriodEnd(subscriptionID, cancel)
	if err != nil {
		return nil, fmt.Errorf("update cancellation for %s: %w", subscriptionID, err)
	}

	local.CancelAtPeriodEnd = updated.CancelAtPeriodEnd
	local.Status = string(updated.Status)
	local.CurrentPeriodEnd = unixTime(updated.CurrentPeriodEnd)

	if err := p.store.SaveSubscription(local); err != nil {
		return nil, fmt.Errorf("save subscription %s: %w", subscriptionID, err)
	}
	return local, nil
}
