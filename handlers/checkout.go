package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"goflare.io/checkout"
	"goflare.io/checkout/models"
)

type CheckoutHandler interface {
	CreateCheckoutSession(c echo.Context) error
}

type checkoutHandler struct {
	Checkout checkout.Checkout
}

func NewCheckoutHandler(
	Checkout checkout.Checkout,
) CheckoutHandler {
	return &checkoutHandler{
		Checkout: Checkout,
	}
}

// CreateCheckoutSession handles POST /checkout
func (ch *checkoutHandler) CreateCheckoutSession(c echo.Context) error {
	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))

	session, err := ch.Checkout.CreateCheckoutSession(c.Request().Context(), &req, token)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, session)
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
}

// writeError maps taxonomy errors to their status with the caller-safe
// message; anything unclassified becomes an opaque 500.
func writeError(c echo.Context, err error) error {
	var checkoutErr *checkout.Error
	if errors.As(err, &checkoutErr) {
		return c.JSON(checkoutErr.HTTPStatus(), map[string]string{"error": checkoutErr.Message})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
