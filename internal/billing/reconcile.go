package billing

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"billing-app/internal/domain/plans"
	"billing-app/internal/domain/subscriptions"
	"billing-app/internal/domain/users"
	"billing-app/internal/payments"

	"github.com/stripe/stripe-go/v75"
)

type ReconcileStore interface {
	PlanByID(id uint) (*plans.Plan, error)
	PlanByPriceID(priceID string) (*plans.Plan, string, error)
	UserByStripeCustomerID(customerID string) (*users.User, error)
	SubscriptionByStripeID(subscriptionID string) (*subscriptions.Subscription, error)
	UpsertSubscription(sub *subscriptions.Subscription) error
	SaveSubscription(sub *subscriptions.Subscription) error
	InvoiceByStripeID(invoiceID string) (*subscriptions.Invoice, error)
	CreateInvoiceIfAbsent(inv *subscriptions.Invoice) (bool, error)
	SaveInvoice(inv *subscriptions.Invoice) error
}

type ReconcileProvider interface {
	GetSubscription(subscriptionID string) (*stripe.Subscription, error)
	GetCustomer(customerID string) (*stripe.Customer, error)
}

// Reconciler is the authoritative writer: it applies verified provider events
// to local rows. Statuses are copied verbatim, transitions are never
// validated locally, and invoice statuses only ever move forward.
type Reconciler struct {
	store    ReconcileStore
	provider ReconcileProvider
}

func NewReconciler(store ReconcileStore, provider ReconcileProvider) *Reconciler {
	return &Reconciler{store: store, provider: provider}
}

// Handle applies one verified event. A returned error means the event could
// not be applied; callers record it and still acknowledge the delivery.
func (r *Reconciler) Handle(event stripe.Event) error {
	kind := KindOf(string(event.Type))

	switch kind {
	case KindCheckoutCompleted:
		return r.checkoutCompleted(event)
	case KindSubscriptionUpdated:
		return r.subscriptionUpdated(event)
	case KindSubscriptionDeleted:
		return r.subscriptionDeleted(event)
	case KindInvoiceCreated:
		return r.invoiceCreated(event)
	case KindInvoicePaymentSucceeded:
		return r.invoicePaymentSucceeded(event)
	case KindInvoicePaymentFailed:
		return r.invoicePaymentFailed(event)
	case KindUnrecognized:
		log.Printf("webhook: ignoring unrecognized event type %q", event.Type)
		return nil
	}
	return nil
}

// checkoutCompleted creates the local subscription row. This is the ONLY
// place rows are born. The session metadata is the sole linkage back to user
// and plan; without it there is nothing to create and the event goes to the
// dead-letter log.
func (r *Reconciler) checkoutCompleted(event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("parse checkout session: %w", err)
	}

	userID := payments.ParseUserID(session.Metadata)
	planID := payments.ParsePlanID(session.Metadata)
	interval := session.Metadata[payments.MetaBillingInterval]
	if userID == 0 || planID == 0 || !plans.ValidInterval(interval) {
		log.Printf("❌ webhook: checkout session %s lacks linkage metadata, dropping", session.ID)
		return fmt.Errorf("%w: checkout session %s", ErrMissingMetadata, session.ID)
	}

	if session.Subscription == nil || session.Subscription.ID == "" {
		return fmt.Errorf("checkout session %s carries no subscription", session.ID)
	}

	plan, err := r.store.PlanByID(planID)
	if err != nil {
		return fmt.Errorf("load plan %d: %w", planID, err)
	}
	if plan == nil {
		return fmt.Errorf("%w: id %d from checkout metadata", ErrPlanNotFound, planID)
	}

	// The session payload carries a bare subscription id; pull the full
	// object for status and period bounds.
	subData, err := r.provider.GetSubscription(session.Subscription.ID)
	if err != nil {
		return fmt.Errorf("fetch subscription %s: %w", session.Subscription.ID, err)
	}

	row := &subscriptions.Subscription{
		UserID:               userID,
		PlanID:               &plan.ID,
		PlanSlug:             plan.Slug,
		StripeSubscriptionID: subData.ID,
		Status:               string(subData.Status),
		BillingInterval:      interval,
		CurrentPeriodStart:   unixTime(subData.CurrentPeriodStart),
		CurrentPeriodEnd:     unixTime(subData.CurrentPeriodEnd),
		CancelAtPeriodEnd:    subData.CancelAtPeriodEnd,
	}
	if err := r.store.UpsertSubscription(row); err != nil {
		return fmt.Errorf("store subscription %s: %w", subData.ID, err)
	}

	log.Printf("✅ webhook: subscription %s active for user %d (plan %s, %s)",
		subData.ID, userID, plan.Slug, interval)
	return nil
}

// subscriptionUpdated refreshes an EXISTING row: verbatim status, period
// bounds, cancel flag, and plan re-resolution from the event's current price.
// Updates for rows checkout never created are dropped and recorded.
func (r *Reconciler) subscriptionUpdated(event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("parse subscription: %w", err)
	}
	if sub.ID == "" {
		return fmt.Errorf("subscription event carries no id")
	}

	local, err := r.store.SubscriptionByStripeID(sub.ID)
	if err != nil {
		return fmt.Errorf("load subscription %s: %w", sub.ID, err)
	}
	if local == nil {
		log.Printf("❌ webhook: update for unknown subscription %s, dropping", sub.ID)
		return fmt.Errorf("%w: %s", ErrUnknownSubscription, sub.ID)
	}

	local.Status = string(sub.Status)
	local.CurrentPeriodStart = unixTime(sub.CurrentPeriodStart)
	local.CurrentPeriodEnd = unixTime(sub.CurrentPeriodEnd)
	local.CancelAtPeriodEnd = sub.CancelAtPeriodEnd

	if err := r.resolvePlan(local, &sub); err != nil {
		return err
	}

	if err := r.store.SaveSubscription(local); err != nil {
		return fmt.Errorf("save subscription %s: %w", sub.ID, err)
	}

	log.Printf("✅ webhook: subscription %s now %s (plan %s, %s)",
		sub.ID, local.Status, local.PlanSlug, local.BillingInterval)
	return nil
}

// resolvePlan re-derives the plan linkage from the event's current price id,
// which also corrects the billing interval after an interval switch. The
// subscription's own metadata tags are the fallback when no plan price
// matches; with neither, the existing linkage stays untouched.
func (r *Reconciler) resolvePlan(local *subscriptions.Subscription, sub *stripe.Subscription) error {
	plan, interval, err := r.store.PlanByPriceID(currentPriceID(sub))
	if err != nil {
		return fmt.Errorf("resolve plan by price: %w", err)
	}
	if plan != nil {
		local.PlanID = &plan.ID
		local.PlanSlug = plan.Slug
		if interval != "" {
			local.BillingInterval = interval
		}
		return nil
	}

	planID := payments.ParsePlanID(sub.Metadata)
	if planID == 0 {
		return nil
	}
	plan, err = r.store.PlanByID(planID)
	if err != nil {
		return fmt.Errorf("load plan %d: %w", planID, err)
	}
	if plan == nil {
		return nil
	}
	local.PlanID = &plan.ID
	local.PlanSlug = plan.Slug
	if iv := sub.Metadata[payments.MetaBillingInterval]; plans.ValidInterval(iv) {
		local.BillingInterval = iv
	}
	return nil
}

// subscriptionDeleted marks the row canceled and touches nothing else; plan
// linkage and period bounds stay for the paid-through window.
func (r *Reconciler) subscriptionDeleted(event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("parse subscription: %w", err)
	}
	if sub.ID == "" {
		return fmt.Errorf("subscription event carries no id")
	}

	local, err := r.store.SubscriptionByStripeID(sub.ID)
	if err != nil {
		return fmt.Errorf("load subscription %s: %w", sub.ID, err)
	}
	if local == nil {
		log.Printf("❌ webhook: deletion of unknown subscription %s, dropping", sub.ID)
		return fmt.Errorf("%w: %s", ErrUnknownSubscription, sub.ID)
	}

	local.Status = subscriptions.StatusCanceled
	if err := r.store.SaveSubscription(local); err != nil {
		return fmt.Errorf("save subscription %s: %w", sub.ID, err)
	}

	log.Printf("✅ webhook: subscription %s canceled", sub.ID)
	return nil
}

func (r *Reconciler) invoiceCreated(event stripe.Event) error {
	var inv stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
		return fmt.Errorf("parse invoice: %w", err)
	}
	_, err := r.ensureInvoice(&inv)
	return err
}

// invoicePaymentSucceeded advances the invoice to paid and re-pulls the tied
// subscription so a renewal rolls the local period bounds forward.
func (r *Reconciler) invoicePaymentSucceeded(event stripe.Event) error {
	var inv stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
		return fmt.Errorf("parse invoice: %w", err)
	}

	row, err := r.ensureInvoice(&inv)
	if err != nil {
		return err
	}

	if subscriptions.InvoiceStatusRank(subscriptions.InvoiceStatusPaid) > subscriptions.InvoiceStatusRank(row.Status) {
		row.Status = subscriptions.InvoiceStatusPaid
	}
	row.AmountPaid = inv.AmountPaid
	if err := r.store.SaveInvoice(row); err != nil {
		return fmt.Errorf("save invoice %s: %w", row.StripeInvoiceID, err)
	}

	if row.StripeSubscriptionID != nil && *row.StripeSubscriptionID != "" {
		return r.refreshSubscription(*row.StripeSubscriptionID, true)
	}
	return nil
}

// invoicePaymentFailed applies the provider-reported invoice status under the
// monotonic guard and refreshes the subscription status ONLY. Access is not
// cut here; the provider decides if and when the subscription dies.
func (r *Reconciler) invoicePaymentFailed(event stripe.Event) error {
	var inv stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
		return fmt.Errorf("parse invoice: %w", err)
	}

	row, err := r.ensureInvoice(&inv)
	if err != nil {
		return err
	}

	if reported := invoiceStatus(&inv); subscriptions.InvoiceStatusRank(reported) > subscriptions.InvoiceStatusRank(row.Status) {
		row.Status = reported
	}
	if err := r.store.SaveInvoice(row); err != nil {
		return fmt.Errorf("save invoice %s: %w", row.StripeInvoiceID, err)
	}

	if row.StripeSubscriptionID != nil && *row.StripeSubscriptionID != "" {
		return r.refreshSubscription(*row.StripeSubscriptionID, false)
	}
	return nil
}

// ensureInvoice returns the local row for a provider invoice, inserting it on
// first sight. Payment events arriving before invoice.created take this same
// path, so ordering between the two does not matter.
func (r *Reconciler) ensureInvoice(inv *stripe.Invoice) (*subscriptions.Invoice, error) {
	if inv.ID == "" {
		return nil, fmt.Errorf("invoice event carries no id")
	}

	existing, err := r.store.InvoiceByStripeID(inv.ID)
	if err != nil {
		return nil, fmt.Errorf("load invoice %s: %w", inv.ID, err)
	}
	if existing != nil {
		return existing, nil
	}

	userID, err := r.resolveInvoiceOwner(inv)
	if err != nil {
		return nil, err
	}

	row := &subscriptions.Invoice{
		UserID:           userID,
		StripeInvoiceID:  inv.ID,
		AmountDue:        inv.AmountDue,
		AmountPaid:       inv.AmountPaid,
		Currency:         string(inv.Currency),
		Status:           invoiceStatus(inv),
		InvoicePDF:       optionalString(inv.InvoicePDF),
		HostedInvoiceURL: optionalString(inv.HostedInvoiceURL),
		PeriodStart:      unixTime(inv.PeriodStart),
		PeriodEnd:        unixTime(inv.PeriodEnd),
	}
	if inv.Subscription != nil && inv.Subscription.ID != "" {
		row.StripeSubscriptionID = &inv.Subscription.ID
	}

	created, err := r.store.CreateInvoiceIfAbsent(row)
	if err != nil {
		return nil, fmt.Errorf("store invoice %s: %w", inv.ID, err)
	}
	if !created {
		// Lost a race with a concurrent delivery; use the stored row.
		stored, err := r.store.InvoiceByStripeID(inv.ID)
		if err != nil {
			return nil, fmt.Errorf("load invoice %s: %w", inv.ID, err)
		}
		if stored != nil {
			return stored, nil
		}
	}

	log.Printf("✅ webhook: invoice %s recorded for user %d (%s)", inv.ID, userID, row.Status)
	return row, nil
}

// resolveInvoiceOwner finds the local user. Primary source is the provider
// customer's user_id tag; the local customer mapping is the fallback. Fields
// on the invoice itself are never trusted for ownership.
func (r *Reconciler) resolveInvoiceOwner(inv *stripe.Invoice) (uint, error) {
	if inv.Customer == nil || inv.Customer.ID == "" {
		return 0, fmt.Errorf("%w: invoice %s carries no customer", ErrMissingMetadata, inv.ID)
	}

	cus, fetchErr := r.provider.GetCustomer(inv.Customer.ID)
	if fetchErr == nil && cus != nil {
		if uid := payments.ParseUserID(cus.Metadata); uid != 0 {
			return uid, nil
		}
	}

	user, err := r.store.UserByStripeCustomerID(inv.Customer.ID)
	if err != nil {
		return 0, fmt.Errorf("load user by customer %s: %w", inv.Customer.ID, err)
	}
	if user != nil {
		return user.ID, nil
	}

	if fetchErr != nil {
		return 0, fmt.Errorf("fetch customer %s: %w", inv.Customer.ID, fetchErr)
	}
	return 0, fmt.Errorf("%w: customer %s has no user linkage", ErrMissingMetadata, inv.Customer.ID)
}

// refreshSubscription re-pulls the subscription from the provider and applies
// the fresh status; withPeriods also rolls the period bounds and cancel flag
// (the renewal path). A missing local row is logged, not an error: there is
// nothing to refresh.
func (r *Reconciler) refreshSubscription(subscriptionID string, withPeriods bool) error {
	local, err := r.store.SubscriptionByStripeID(subscriptionID)
	if err != nil {
		return fmt.Errorf("load subscription %s: %w", subscriptionID, err)
	}
	if local == nil {
		log.Printf("webhook: no local subscription %s to refresh", subscriptionID)
		return nil
	}

	fresh, err := r.provider.GetSubscription(subscriptionID)
	if err != nil {
		return fmt.Errorf("fetch subscription %s: %w", subscriptionID, err)
	}

	local.Status = string(fresh.Status)
	if withPeriods {
		local.CurrentPeriodStart = unixTime(fresh.CurrentPeriodStart)
		local.CurrentPeriodEnd = unixTime(fresh.CurrentPeriodEnd)
		local.CancelAtPeriodEnd = fresh.CancelAtPeriodEnd
	}

	if err := r.store.SaveSubscription(local); err != nil {
		return fmt.Errorf("save subscription %s: %w", subscriptionID, err)
	}
	return nil
}

func currentPriceID(sub *stripe.Subscription) string {
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return ""
	}
	return sub.Items.Data[0].Price.ID
}

func invoiceStatus(inv *stripe.Invoice) string {
	if inv.Status == "" {
		return subscriptions.InvoiceStatusDraft
	}
	return string(inv.Status)
}

func unixTime(sec int64) *time.Time {
	if sec == 0 {
		return nil
	}
	t := time.Unix(sec, 0)
	return &t
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
