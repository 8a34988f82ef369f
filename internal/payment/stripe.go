// Package payment is a thin wrapper around the Stripe PaymentIntent API.
// Failures from the gateway are passed through to the caller untouched.
package payment

import (
	"errors"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// ErrNotConfigured is returned when no secret key was supplied at startup.
var ErrNotConfigured = errors.New("stripe secret key is not configured")

type Client struct {
	configured bool
}

// NewClient sets the package-level Stripe key. An empty key yields a client
// whose calls fail with ErrNotConfigured instead of blocking startup.
func NewClient(secretKey string) *Client {
	if secretKey == "" {
		return &Client{}
	}
	stripe.Key = secretKey
	return &Client{configured: true}
}

// Intent is the subset of a PaymentIntent the handlers care about.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// CreateIntent opens a PaymentIntent with automatic payment methods and
// returns the client secret the frontend needs to confirm it.
func (c *Client) CreateIntent(amountCents int64, currency string, metadata map[string]string) (*Intent, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripe(pi), nil
}

// ConfirmTestIntent creates and immediately confirms an intent with
// Stripe's pm_card_visa test card.
func (c *Client) ConfirmTestIntent(amountCents int64, currency string, metadata map[string]string) (*Intent, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amountCents),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String("pm_card_visa"),
		Confirm:       stripe.Bool(true),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripe(pi), nil
}

func fromStripe(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}
}
