package models

import (
	"time"

	"goflare.io/checkout/models/enum"
)

// Subscription mirrors recurring-billing state for a Stripe customer.
// One record per customer; created as not_started at checkout time and
// transitioned only by webhook reconciliation.
type Subscription struct {
	ID         uint64                  `json:"id"`
	CustomerID string                  `json:"customer_id"`
	Status     enum.SubscriptionStatus `json:"status"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}
