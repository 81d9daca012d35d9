package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

type EventHandler func(context.Context, *stripe.Event) error

// EventManager maps webhook event types to their handlers. Events without a
// registered handler are acknowledged and skipped.
type EventManager struct {
	handlers map[stripe.EventType]EventHandler
	logger   *zap.Logger
}

func NewEventManager(logger *zap.Logger) *EventManager {
	return &EventManager{
		handlers: make(map[stripe.EventType]EventHandler),
		logger:   logger,
	}
}

func (em *EventManager) RegisterHandler(eventType stripe.EventType, handler EventHandler) {
	em.handlers[eventType] = handler
}

func (em *EventManager) GetHandler(eventType stripe.EventType) (EventHandler, bool) {
	handler, exists := em.handlers[eventType]
	return handler, exists
}

func (sc *StripeCheckout) registerEventHandlers() {
	eventHandlers := map[stripe.EventType]EventHandler{
		stripe.EventTypeCheckoutSessionCompleted:   sc.handleCheckoutSessionCompleted,
		stripe.EventTypePaymentIntentPaymentFailed: sc.handlePaymentIntentFailed,
	}

	for eventType, handler := range eventHandlers {
		sc.eventManager.RegisterHandler(eventType, handler)
	}
}
