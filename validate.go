package checkout

import (
	"fmt"

	"goflare.io/checkout/models"
)

// validateCheckoutRequest checks required fields in a fixed order so the
// reported field is reproducible: price_id, success_url, cancel_url, mode.
// The first failure wins.
func validateCheckoutRequest(req *models.CheckoutRequest) *Error {
	required := []struct {
		name  string
		value string
	}{
		{"price_id", req.PriceID},
		{"success_url", req.SuccessURL},
		{"cancel_url", req.CancelURL},
	}

	for _, field := range required {
		if field.value == "" {
			return NewError(CodeInvalidParameter,
				fmt.Sprintf("Missing required parameter %s", field.name), nil)
		}
	}

	if !req.Mode.Valid() {
		return NewError(CodeInvalidParameter,
			"Expected parameter mode to be one of payment, subscription", nil)
	}

	return nil
}
