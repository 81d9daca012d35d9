package models

import (
	"time"

	"github.com/google/uuid"

	"goflare.io/checkout/models/enum"
)

// Payment records the outcome of a payment intent. One record per
// payment intent id, upserted so redelivered webhooks cannot duplicate it.
type Payment struct {
	ID              uint64             `json:"id"`
	UserID          uuid.UUID          `json:"user_id"`
	PaymentIntentID string             `json:"stripe_payment_intent_id"`
	Amount          int64              `json:"amount"`
	Currency        string             `json:"currency"`
	Status          enum.PaymentStatus `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
