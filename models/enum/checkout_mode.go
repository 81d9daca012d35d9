package enum

type CheckoutMode string

const (
	CheckoutModePayment      CheckoutMode = "payment"
	CheckoutModeSubscription CheckoutMode = "subscription"
)

// Valid reports whether the mode is one of the enumerated checkout modes.
func (m CheckoutMode) Valid() bool {
	return m == CheckoutModePayment || m == CheckoutModeSubscription
}
