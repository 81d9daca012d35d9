package handlers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"goflare.io/checkout"
)

type WebhookHandler interface {
	HandleStripeWebhook(c echo.Context) error
}

type webhookHandler struct {
	Checkout checkout.Checkout
}

func NewWebhookHandler(
	Checkout checkout.Checkout,
) WebhookHandler {
	return &webhookHandler{
		Checkout: Checkout,
	}
}

// HandleStripeWebhook handles POST /webhook
func (wh *webhookHandler) HandleStripeWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read request body"})
	}

	signature := c.Request().Header.Get("Stripe-Signature")

	if err = wh.Checkout.HandleWebhook(c.Request().Context(), payload, signature); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
