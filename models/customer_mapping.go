package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerMapping links a local user to a Stripe customer.
// At most one non-deleted mapping exists per user.
type CustomerMapping struct {
	ID         uint64     `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	CustomerID string     `json:"customer_id"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}
