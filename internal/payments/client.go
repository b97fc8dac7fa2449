package payments

import (
	"errors"

	"github.com/stripe/stripe-go/v75/client"
)

// ErrNotConfigured is returned by every provider call when no Stripe secret
// key was supplied at startup. Handlers translate it to a 503 so the rest of
// the app stays bootable without billing credentials.
var ErrNotConfigured = errors.New("stripe is not configured")

// Client is the injected handle to Stripe. It is constructed once in main and
// passed down; there is no package-level key and no global client state.
type Client struct {
	api           *client.API
	webhookSecret string
}

// New builds a Client from the configured credentials. An empty secretKey
// yields a client whose every call fails with ErrNotConfigured instead of a
// nil dereference.
func New(secretKey, webhookSecret string) *Client {
	c := &Client{webhookSecret: webhookSecret}
	if secretKey != "" {
		c.api = client.New(secretKey, nil)
	}
	return c
}

// Configured reports whether provider calls can be made at all.
func (c *Client) Configured() bool {
	return c != nil && c.api != nil
}

func (c *Client) ensure() error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	return nil
}
