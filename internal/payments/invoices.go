package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v75"
)

// ListInvoices returns up to limit provider invoices for the customer,
// newest first.
func (c *Client) ListInvoices(customerID string, limit int64) ([]*stripe.Invoice, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}

	params := &stripe.InvoiceListParams{
		Customer: stripe.String(customerID),
	}
	params.Limit = stripe.Int64(limit)

	it := c.api.Invoices.List(params)

	var invoices []*stripe.Invoice
	for it.Next() {
		invoices = append(invoices, it.Invoice())
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// ListCardPaymentMethods returns the customer's stored card payment methods.
func (c *Client) ListCardPaymentMethods(customerID string) ([]*stripe.PaymentMethod, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}

	params := &stripe.PaymentMethodListParams{
		Customer: stripe.String(customerID),
		Type:     stripe.String(string(stripe.PaymentMethodTypeCard)),
	}

	it := c.api.PaymentMethods.List(params)

	var methods []*stripe.PaymentMethod
	for it.Next() {
		methods = append(methods, it.PaymentMethod())
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return methods, nil
}

// SetDefaultPaymentMethod makes the given payment method the customer's
// default for future invoices.
func (c *Client) SetDefaultPaymentMethod(customerID, paymentMethodID string) error {
	if err := c.ensure(); err != nil {
		return err
	}

	_, err := c.api.Customers.Update(customerID, &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	})
	return err
}

// DetachPaymentMethod removes a payment method from its customer.
func (c *Client) DetachPaymentMethod(paymentMethodID string) error {
	if err := c.ensure(); err != nil {
		return err
	}
	_, err := c.api.PaymentMethods.Detach(paymentMethodID, nil)
	return err
}
