package payment

import (
	"context"
	"fmt"
	"log"

	"roost/internal/config"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
)

// Gateway charges a tokenized card and returns a gateway reference for the
// payment record. Cash payments never touch it.
type Gateway interface {
	Charge(ctx context.Context, amount float64, cardToken, description string) (string, error)
}

type stripeGateway struct{}

// NewStripeGateway returns a Gateway backed by stripe charges. The secret
// key is read from STRIPE_SECRET_KEY.
func NewStripeGateway() Gateway {
	stripe.Key = config.GetEnv("STRIPE_SECRET_KEY", "")
	return &stripeGateway{}
}

func (g *stripeGateway) Charge(ctx context.Context, amount float64, cardToken, description string) (string, error) {
	params := &stripe.ChargeParams{
		// Stripe amounts are in the smallest currency unit.
		Amount:      stripe.Int64(int64(amount * 100)),
		Currency:    stripe.String(string(stripe.CurrencyINR)),
		Description: stripe.String(description),
	}
	params.Context = ctx
	if err := params.SetSource(cardToken); err != nil {
		return "", fmt.Errorf("invalid card token: %w", err)
	}

	ch, err := charge.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe charge failed: %w", err)
	}
	return ch.ID, nil
}

// noopGateway accepts every charge and is used when no gateway is
// configured (demo mode, tests).
type noopGateway struct{}

func NewNoopGateway() Gateway { return &noopGateway{} }

func (g *noopGateway) Charge(ctx context.Context, amount float64, cardToken, description string) (string, error) {
	log.Printf("payment gateway disabled, accepting charge of %.2f", amount)
	return "offline-" + cardToken, nil
}
