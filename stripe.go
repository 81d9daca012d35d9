package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"goflare.io/checkout/config"
	"goflare.io/checkout/customer"
	"goflare.io/checkout/event"
	"goflare.io/checkout/identity"
	"goflare.io/checkout/models"
	"goflare.io/checkout/models/enum"
	"goflare.io/checkout/payment"
	"goflare.io/checkout/subscription"
)

type StripeCheckout struct {
	gateway       Gateway
	verifier      identity.Verifier
	eventManager  *EventManager
	dispatcher    *Dispatcher
	webhookSecret string
	logger        *zap.Logger

	customers     customer.Service
	subscriptions subscription.Service
	payments      payment.Service
	events        event.Service
	provisioner   AccountProvisioner
}

func NewStripeCheckout(cfg *config.Config,
	gateway Gateway,
	verifier identity.Verifier,
	cs customer.Service,
	ss subscription.Service,
	ps payment.Service,
	es event.Service,
	provisioner AccountProvisioner,
	logger *zap.Logger) Checkout {
	sc := &StripeCheckout{
		gateway:       gateway,
		verifier:      verifier,
		webhookSecret: cfg.Stripe.WebhookSecret,
		customers:     cs,
		subscriptions: ss,
		payments:      ps,
		events:        es,
		provisioner:   provisioner,
		logger:        logger,
	}

	sc.eventManager = NewEventManager(logger)
	sc.registerEventHandlers()

	sc.dispatcher = NewDispatcher(4, 256, sc)
	sc.dispatcher.Run()

	return sc
}

// CreateCheckoutSession validates the request, resolves the Stripe customer
// for the caller and creates the hosted checkout session. A bearer token
// that fails verification degrades to a guest checkout rather than
// rejecting the request.
func (sc *StripeCheckout) CreateCheckoutSession(ctx context.Context, req *models.CheckoutRequest, bearerToken string) (*models.CheckoutSession, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	ident := sc.resolveIdentity(ctx, bearerToken)

	var customerID string
	if ident != nil {
		id, err := sc.resolveCustomer(ctx, ident, req.Mode)
		if err != nil {
			return nil, err
		}
		customerID = id
	} else {
		id, err := sc.createGuestCustomer(ctx, req.CustomerEmail)
		if err != nil {
			return nil, err
		}
		customerID = id
	}

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(req.Mode)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}

	if ident != nil {
		// Stamped so checkout.session.completed can reconcile the purchase
		// back to the local user.
		params.AddMetadata("user_id", ident.UserID.String())
	} else if req.CustomerEmail != "" {
		params.AddMetadata("guest_checkout", "true")
		params.AddMetadata("checkout_email", req.CustomerEmail)
		params.AddMetadata("should_create_user", "true")
	}

	session, err := sc.gateway.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, NewError(CodeProviderError, "failed to create checkout session", err)
	}

	sc.logger.Info("created checkout session",
		zap.String("session_id", session.ID),
		zap.String("customer_id", customerID))

	return &models.CheckoutSession{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

// resolveIdentity verifies the bearer token when one is present. A
// verification failure is logged and treated as an unauthenticated caller.
func (sc *StripeCheckout) resolveIdentity(ctx context.Context, bearerToken string) *identity.Identity {
	if bearerToken == "" {
		return nil
	}

	ident, err := sc.verifier.Verify(ctx, bearerToken)
	if err != nil {
		sc.logger.Warn("bearer token verification failed, continuing as guest",
			zap.String("error_code", string(CodeAuthLookupFailure)),
			zap.Error(err))
		return nil
	}

	return ident
}

// resolveCustomer returns the Stripe customer id for an authenticated user,
// creating the customer, mapping and (for subscriptions) the initial
// subscription record when the user checks out for the first time.
func (sc *StripeCheckout) resolveCustomer(ctx context.Context, ident *identity.Identity, mode enum.CheckoutMode) (string, error) {
	mapping, err := sc.customers.GetByUserID(ctx, ident.UserID)
	if err != nil {
		return "", NewError(CodeCustomerLookupFailure, "failed to fetch customer information", err)
	}

	if mapping == nil {
		return sc.provisionCustomer(ctx, ident, mode)
	}

	if mode == enum.CheckoutModeSubscription {
		if err = sc.ensureSubscriptionRecord(ctx, mapping.CustomerID); err != nil {
			return "", err
		}
	}

	return mapping.CustomerID, nil
}

// provisionCustomer runs the first-checkout saga: create the Stripe
// customer, persist the mapping, and for subscription mode bootstrap the
// not_started record. Each completed step is compensated when a later one
// fails.
func (sc *StripeCheckout) provisionCustomer(ctx context.Context, ident *identity.Identity, mode enum.CheckoutMode) (string, error) {
	var customerID string

	steps := []sagaStep{
		{
			name: "create_provider_customer",
			run: func(ctx context.Context) error {
				params := &stripe.CustomerParams{
					Email: stripe.String(ident.Email),
				}
				params.AddMetadata("userId", ident.UserID.String())

				cust, err := sc.gateway.CreateCustomer(ctx, params)
				if err != nil {
					return NewError(CodeProviderError, "failed to create customer", err)
				}
				customerID = cust.ID

				sc.logger.Info("created new stripe customer",
					zap.String("customer_id", customerID),
					zap.String("user_id", ident.UserID.String()))
				return nil
			},
			compensate: func(ctx context.Context) error {
				if err := sc.gateway.DeleteCustomer(ctx, customerID); err != nil {
					return NewError(CodeCustomerRollbackFailure, "failed to delete stripe customer during rollback", err)
				}
				if err := sc.subscriptions.DeleteByCustomerID(ctx, customerID); err != nil {
					return NewError(CodeSubscriptionRollbackFailure, "failed to delete subscription records during rollback", err)
				}
				return nil
			},
		},
		{
			name: "persist_customer_mapping",
			run: func(ctx context.Context) error {
				err := sc.customers.Create(ctx, &models.CustomerMapping{
					UserID:     ident.UserID,
					CustomerID: customerID,
				})
				if err != nil {
					return NewError(CodeMappingPersistenceError, "failed to create customer mapping", err)
				}
				return nil
			},
			compensate: func(ctx context.Context) error {
				return sc.customers.SoftDelete(ctx, customerID)
			},
		},
	}

	if mode == enum.CheckoutModeSubscription {
		steps = append(steps, sagaStep{
			name: "create_subscription_record",
			run: func(ctx context.Context) error {
				if err := sc.subscriptions.CreateNotStarted(ctx, customerID); err != nil {
					return NewError(CodeSubscriptionRecordError, "unable to save the subscription in the database", err)
				}
				return nil
			},
		})
	}

	sg := &saga{steps: steps, logger: sc.logger}
	if err := sg.execute(ctx); err != nil {
		if errors.Is(err, customer.ErrDuplicateMapping) {
			// A concurrent checkout for the same user won the insert race.
			// The rollback already removed our provider customer; reuse theirs.
			return sc.reuseConcurrentMapping(ctx, ident.UserID, mode, err)
		}
		return "", err
	}

	return customerID, nil
}

func (sc *StripeCheckout) reuseConcurrentMapping(ctx context.Context, userID uuid.UUID, mode enum.CheckoutMode, cause error) (string, error) {
	existing, err := sc.customers.GetByUserID(ctx, userID)
	if err != nil || existing == nil {
		return "", NewError(CodeMappingPersistenceError, "failed to create customer mapping", cause)
	}

	sc.logger.Info("concurrent checkout created the mapping first, reusing",
		zap.String("user_id", userID.String()),
		zap.String("customer_id", existing.CustomerID))

	if mode == enum.CheckoutModeSubscription {
		if err = sc.ensureSubscriptionRecord(ctx, existing.CustomerID); err != nil {
			return "", err
		}
	}

	return existing.CustomerID, nil
}

func (sc *StripeCheckout) ensureSubscriptionRecord(ctx context.Context, customerID string) error {
	sub, err := sc.subscriptions.GetByCustomerID(ctx, customerID)
	if err != nil {
		return NewError(CodeSubscriptionRecordError, "failed to fetch subscription information", err)
	}

	if sub == nil {
		if err = sc.subscriptions.CreateNotStarted(ctx, customerID); err != nil {
			return NewError(CodeSubscriptionRecordError, "failed to create subscription record for existing customer", err)
		}
	}

	return nil
}

// createGuestCustomer creates a Stripe customer with no local user
// association. A supplied email is attached along with the guest metadata
// the webhook uses to provision an account later.
func (sc *StripeCheckout) createGuestCustomer(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerParams{}
	if email != "" {
		params.Email = stripe.String(email)
		params.AddMetadata("guest_checkout", "true")
		params.AddMetadata("checkout_email", email)
	}

	cust, err := sc.gateway.CreateCustomer(ctx, params)
	if err != nil {
		return "", NewError(CodeProviderError, "failed to create customer", err)
	}

	sc.logger.Info("created guest customer",
		zap.String("customer_id", cust.ID),
		zap.String("checkout_email", email))

	return cust.ID, nil
}

// HandleWebhook verifies the event signature, claims the event id so
// redeliveries are skipped, and hands the event to the worker pool.
// Processing outlives the HTTP request, so workers run with a background
// context.
func (sc *StripeCheckout) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if sc.webhookSecret == "" {
		return NewError(CodeSignatureError, "webhook secret not configured", nil)
	}

	stripeEvent, err := webhook.ConstructEventWithOptions(payload, signature, sc.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return NewError(CodeSignatureError, "webhook signature verification failed", err)
	}

	claimed, err := sc.events.MarkEventAsProcessed(ctx, stripeEvent.ID)
	if err != nil {
		// Fail open: reconciliation writes are idempotent on their own keys.
		sc.logger.Warn("processed-event guard unavailable, processing anyway",
			zap.String("event_id", stripeEvent.ID),
			zap.Error(err))
	} else if !claimed {
		sc.logger.Info("duplicate webhook delivery skipped",
			zap.String("event_id", stripeEvent.ID),
			zap.String("event_type", string(stripeEvent.Type)))
		return nil
	}

	sc.dispatcher.Submit(context.Background(), &stripeEvent)

	return nil
}

func (sc *StripeCheckout) processEvent(ctx context.Context, stripeEvent *stripe.Event) error {
	handler, exists := sc.eventManager.GetHandler(stripeEvent.Type)
	if !exists {
		sc.logger.Info("unhandled webhook event type",
			zap.String("event_type", string(stripeEvent.Type)),
			zap.String("event_id", stripeEvent.ID))
		return nil
	}

	return handler(ctx, stripeEvent)
}

func (sc *StripeCheckout) handleCheckoutSessionCompleted(ctx context.Context, stripeEvent *stripe.Event) error {
	session := new(stripe.CheckoutSession)
	if err := json.Unmarshal(stripeEvent.Data.Raw, session); err != nil {
		sc.logger.Error("failed to unmarshal checkout session event", zap.Error(err))
		return err
	}

	rawUserID := session.Metadata["user_id"]
	if rawUserID == "" {
		if session.Metadata["guest_checkout"] == "true" && session.Metadata["checkout_email"] != "" {
			if _, err := sc.provisioner.ProvisionAccount(ctx, session.Metadata["checkout_email"]); err != nil {
				sc.logger.Error("failed to provision account for guest checkout",
					zap.String("session_id", session.ID),
					zap.Error(err))
			}
			return nil
		}

		sc.logger.Info("checkout session completed without user_id metadata, skipping",
			zap.String("session_id", session.ID))
		return nil
	}

	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		sc.logger.Error("invalid user_id in session metadata",
			zap.String("session_id", session.ID),
			zap.String("user_id", rawUserID))
		return fmt.Errorf("invalid user_id in session metadata: %w", err)
	}

	var customerID string
	if session.Customer != nil {
		customerID = session.Customer.ID
	}
	var paymentIntentID string
	if session.PaymentIntent != nil {
		paymentIntentID = session.PaymentIntent.ID
	}

	if err = sc.payments.RecordCheckoutCompleted(ctx, userID, customerID, &models.Payment{
		UserID:          userID,
		PaymentIntentID: paymentIntentID,
		Amount:          session.AmountTotal,
		Currency:        string(session.Currency),
		Status:          enum.PaymentStatusSucceeded,
	}); err != nil {
		sc.logger.Error("failed to reconcile completed checkout",
			zap.String("session_id", session.ID),
			zap.String("user_id", rawUserID),
			zap.Error(err))
		return err
	}

	sc.logger.Info("payment completed",
		zap.String("user_id", rawUserID),
		zap.String("payment_intent_id", paymentIntentID))

	return nil
}

func (sc *StripeCheckout) handlePaymentIntentFailed(ctx context.Context, stripeEvent *stripe.Event) error {
	paymentIntent := new(stripe.PaymentIntent)
	if err := json.Unmarshal(stripeEvent.Data.Raw, paymentIntent); err != nil {
		sc.logger.Error("failed to unmarshal payment intent event", zap.Error(err))
		return err
	}

	updated, err := sc.payments.MarkFailed(ctx, paymentIntent.ID)
	if err != nil {
		sc.logger.Error("failed to mark payment as failed",
			zap.String("payment_intent_id", paymentIntent.ID),
			zap.Error(err))
		return err
	}

	if !updated {
		sc.logger.Info("no payment record for failed payment intent",
			zap.String("payment_intent_id", paymentIntent.ID))
		return nil
	}

	sc.logger.Info("payment failed",
		zap.String("payment_intent_id", paymentIntent.ID))

	return nil
}

func (sc *StripeCheckout) Close() {
	sc.logger.Info("initiating graceful shutdown of webhook workers")
	sc.dispatcher.Stop()
	sc.logger.Info("checkout service shut down")
}
