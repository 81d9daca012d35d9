package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"goflare.io/checkout/config"
)

// Gateway is the slice of the Stripe API this service touches. It exists so
// the checkout core takes an injected provider instead of a package-level
// SDK client, and so tests can substitute a double.
type Gateway interface {
	CreateCustomer(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type stripeGateway struct {
	api *client.API
}

func NewStripeGateway(cfg *config.Config) Gateway {
	return &stripeGateway{
		api: client.New(cfg.Stripe.SecretKey, nil),
	}
}

func (g *stripeGateway) CreateCustomer(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error) {
	params.Context = ctx
	return g.api.Customers.New(params)
}

func (g *stripeGateway) DeleteCustomer(ctx context.Context, customerID string) error {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	_, err := g.api.Customers.Del(customerID, params)
	return err
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	params.Context = ctx
	return g.api.CheckoutSessions.New(params)
}
