package stripepay

import (
	"fmt"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go"
	"github.com/stripe/stripe-go/client"
)

// Client creates Stripe PaymentIntents for card payments. QR payments go
// through PayPay; this is the card-side boundary of the same checkout.
type Client struct {
	api *client.API
}

func New(secretKey string) *Client {
	return &Client{api: client.New(secretKey, nil)}
}

// CreateIntent opens a JPY PaymentIntent and returns its client secret. The
// idempotency key guards against duplicate intents on client retries.
func (c *Client) CreateIntent(amountYen int64, bookingID, ownerID string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountYen),
		Currency: stripe.String(string(stripe.CurrencyJPY)),
	}
	params.AddMetadata("booking_id", bookingID)
	params.AddMetadata("owner_id", ownerID)
	params.SetIdempotencyKey(uuid.New().String())

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}

	return pi.ClientSecret, nil
}
