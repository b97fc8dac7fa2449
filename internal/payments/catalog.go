package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v75"
)

// FindProductByPlanID looks a product up by its plan_id metadata tag, never
// by a stored provider id, so renamed or re-created products are found again.
// Returns (nil, nil) when no product carries the tag.
func (c *Client) FindProductByPlanID(planID uint) (*stripe.Product, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}

	params := &stripe.ProductSearchParams{
		SearchParams: stripe.SearchParams{
			Query: fmt.Sprintf("metadata['%s']:'%d'", MetaPlanID, planID),
		},
	}

	it := c.api.Products.Search(params)
	for it.Next() {
		return it.Product(), nil
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return nil, nil
}

// CreateProduct creates a provider product tagged with the local plan id.
func (c *Client) CreateProduct(planID uint, name, description string, active bool) (*stripe.Product, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}

	params := &stripe.ProductParams{
		Name:   stripe.String(name),
		Active: stripe.Bool(active),
		Metadata: map[string]string{
			MetaPlanID: fmt.Sprint(planID),
		},
	}
	if description != "" {
		params.Description = stripe.String(description)
	}
	return c.api.Products.New(params)
}

// UpdateProduct refreshes the mutable display fields of an existing product.
// Prices are never touched here.
func (c *Client) UpdateProduct(productID, name, description string, active bool) (*stripe.Product, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}

	params := &stripe.ProductParams{
		Name:   stripe.String(name),
		Active: stripe.Bool(active),
	}
	if description != "" {
		params.Description = stripe.String(description)
	}
	return c.api.Products.Update(productID, params)
}

// CreateRecurringPrice creates one recurring price on the product. Prices are
// immutable on the provider side; callers must not attempt edits.
// interval is the local vocabulary (monthly|yearly), amount is minor units.
func (c *Client) CreateRecurringPrice(productID, interval, currency string, amount int64) (*stripe.Price, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}

	params := &stripe.PriceParams{
		Product:    stripe.String(productID),
		Currency:   stripe.String(currency),
		UnitAmount: stripe.Int64(amount),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(ProviderInterval(interval)),
		},
		Metadata: map[string]string{
			MetaBillingInterval: interval,
		},
	}
	return c.api.Prices.New(params)
}
