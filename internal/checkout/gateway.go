package checkout

import (
	"context"

	"github.com/lumicart/storefront/pkg/stripe"
)

type stripeGateway struct {
	client *stripe.Client
}

// NewStripeGateway adapts the Stripe client onto the PaymentGateway contract.
func NewStripeGateway(client *stripe.Client) PaymentGateway {
	if client == nil {
		return nil
	}
	return &stripeGateway{client: client}
}

func (g *stripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*IntentHandle, error) {
	handle, err := g.client.CreateIntent(ctx, amountCents, currency, metadata)
	if err != nil {
		return nil, err
	}
	return &IntentHandle{
		ID:           handle.ID,
		ClientSecret: handle.ClientSecret,
		AmountCents:  handle.AmountCents,
		Currency:     handle.Currency,
	}, nil
}

func (g *stripeGateway) Confirm(ctx context.Context, handleID string) (PaymentResult, error) {
	outcome, err := g.client.Confirm(ctx, handleID)
	if err != nil {
		return PaymentResult{}, err
	}
	return PaymentResult{Status: outcome.Status, Reason: outcome.Reason}, nil
}
