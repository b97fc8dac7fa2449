package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v75"
)

// CheckoutParams carries everything a hosted subscription checkout needs.
type CheckoutParams struct {
	CustomerID string
	PriceID    string
	SuccessURL string
	CancelURL  string
	UserID     uint
	PlanID     uint
	Interval   string
}

// CreateCheckoutSession opens a subscription-mode hosted checkout. The
// user/plan/interval linkage rides in metadata on BOTH the session and the
// subscription it will create; the webhook reconciler has no other way to tie
// provider objects back to local rows.
func (c *Client) CreateCheckoutSession(p CheckoutParams) (*stripe.CheckoutSession, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}

	meta := LinkageMetadata(p.UserID, p.PlanID, p.Interval)

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(p.CustomerID),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(p.PriceID), Quantity: stripe.Int64(1)},
		},

		ClientReferenceID: stripe.String(fmt.Sprint(p.UserID)),

		Metadata: meta,
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: meta,
		},
	}

	return c.api.CheckoutSessions.New(params)
}

// CreatePortalSession opens the provider-hosted billing portal for a customer.
func (c *Client) CreatePortalSession(customerID, returnURL string) (*stripe.BillingPortalSession, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	return c.api.BillingPortalSessions.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	})
}
