package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v75"
)

// CreateCustomer creates the provider customer tagged with the local user id.
func (c *Client) CreateCustomer(userID uint, email, name string) (*stripe.Customer, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Metadata: map[string]string{
			MetaUserID: fmt.Sprint(userID),
		},
	}
	if name != "" {
		params.Name = stripe.String(name)
	}
	return c.api.Customers.New(params)
}

// GetCustomer fetches one customer by id.
func (c *Client) GetCustomer(customerID string) (*stripe.Customer, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	return c.api.Customers.Get(customerID, nil)
}
