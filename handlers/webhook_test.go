package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goflare.io/checkout"
)

func TestHandleStripeWebhook_Acknowledges(t *testing.T) {
	stub := &stubCheckout{}
	h := NewWebhookHandler(stub)

	payload := `{"id":"evt_1","type":"checkout.session.completed"}`
	c, rec := postJSON("/webhook", payload, map[string]string{
		"Stripe-Signature": "t=1,v1=abc",
	})

	require.NoError(t, h.HandleStripeWebhook(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true}`, rec.Body.String())

	assert.Equal(t, payload, string(stub.gotPayload))
	assert.Equal(t, "t=1,v1=abc", stub.gotSignature)
}

func TestHandleStripeWebhook_SignatureFailureIs400(t *testing.T) {
	stub := &stubCheckout{webhookErr: checkout.NewError(
		checkout.CodeSignatureError, "webhook signature verification failed", nil)}
	h := NewWebhookHandler(stub)

	c, rec := postJSON("/webhook", `{}`, nil)

	require.NoError(t, h.HandleStripeWebhook(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"webhook signature verification failed"}`, rec.Body.String())
}
