package checkout

import (
	"context"

	"goflare.io/checkout/models"
)

// Checkout is the server-side surface of the purchase flow: creating
// provider-hosted checkout sessions and reconciling the provider's
// asynchronous webhook events.
type Checkout interface {
	// CreateCheckoutSession resolves or creates the Stripe customer for the
	// caller (authenticated or guest) and returns the hosted session to
	// redirect to. bearerToken may be empty.
	CreateCheckoutSession(ctx context.Context, req *models.CheckoutRequest, bearerToken string) (*models.CheckoutSession, error)

	// HandleWebhook verifies and enqueues a signed provider event.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error

	Close()
}
