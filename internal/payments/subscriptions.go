package payments

import (
	"fmt"
	"sort"

	"github.com/stripe/stripe-go/v75"
)

// ListActiveSubscriptions returns every provider subscription in status
// "active" for the customer, newest first. Duplicate cleanup relies on the
// ordering: index 0 is the one to keep.
func (c *Client) ListActiveSubscriptions(customerID string) ([]*stripe.Subscription, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}

	it := c.api.Subscriptions.List(params)

	var subs []*stripe.Subscription
	for it.Next() {
		subs = append(subs, it.Subscription())
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	sort.Slice(subs, func(i, j int) bool { return subs[i].Created > subs[j].Created })
	return subs, nil
}

// GetSubscription fetches one subscription by id.
func (c *Client) GetSubscription(subscriptionID string) (*stripe.Subscription, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	return c.api.Subscriptions.Get(subscriptionID, nil)
}

// ChangeSubscriptionPrice swaps the subscription's priced item to a new price
// with immediate proration, and writes the plan linkage tags onto the
// subscription so later webhooks can resolve the plan without a price match.
func (c *Client) ChangeSubscriptionPrice(subscriptionID, itemID, priceID string, metadata map[string]string) (*stripe.Subscription, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}

	params := &stripe.SubscriptionParams{
		Items: []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(itemID),
				Price: stripe.String(priceID),
			},
		},
		ProrationBehavior: stripe.String("create_prorations"),
	}
	if len(metadata) > 0 {
		params.Metadata = metadata
	}
	return c.api.Subscriptions.Update(subscriptionID, params)
}

// SetCancelAtPeriodEnd flips the provider-side cancel flag. The subscription
// keeps running until the period end; the deletion webhook does the rest.
func (c *Client) SetCancelAtPeriodEnd(subscriptionID string, cancel bool) (*stripe.Subscription, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	return c.api.Subscriptions.Update(subscriptionID, &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(cancel),
	})
}

// CancelNow cancels a subscription immediately. Used only by duplicate
// cleanup, never by the user-facing cancel flow.
func (c *Client) CancelNow(subscriptionID string) (*stripe.Subscription, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	return c.api.Subscriptions.Cancel(subscriptionID, nil)
}
