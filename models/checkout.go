package models

import "goflare.io/checkout/models/enum"

// CheckoutRequest is the client payload for creating a checkout session.
// It is transient and never persisted.
type CheckoutRequest struct {
	PriceID       string            `json:"price_id"`
	SuccessURL    string            `json:"success_url"`
	CancelURL     string            `json:"cancel_url"`
	Mode          enum.CheckoutMode `json:"mode"`
	CustomerEmail string            `json:"customer_email,omitempty"`
}

// CheckoutSession is the provider-hosted session the client is redirected to.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}
