package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"

	"goflare.io/checkout/identity"
	"goflare.io/checkout/models"
)

type fakeGateway struct {
	mu sync.Mutex

	customerParams []*stripe.CustomerParams
	createdIDs     []string
	deletedIDs     []string
	sessionParams  []*stripe.CheckoutSessionParams

	customerErr error
	deleteErr   error
	sessionErr  error
}

func (g *fakeGateway) CreateCustomer(_ context.Context, params *stripe.CustomerParams) (*stripe.Customer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.customerErr != nil {
		return nil, g.customerErr
	}

	id := fmt.Sprintf("cus_%d", len(g.createdIDs)+1)
	g.customerParams = append(g.customerParams, params)
	g.createdIDs = append(g.createdIDs, id)

	cust := &stripe.Customer{ID: id}
	if params.Email != nil {
		cust.Email = *params.Email
	}
	return cust, nil
}

func (g *fakeGateway) DeleteCustomer(_ context.Context, customerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.deleteErr != nil {
		return g.deleteErr
	}
	g.deletedIDs = append(g.deletedIDs, customerID)
	return nil
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessionErr != nil {
		return nil, g.sessionErr
	}
	g.sessionParams = append(g.sessionParams, params)
	return &stripe.CheckoutSession{
		ID:  "cs_test_1",
		URL: "https://checkout.stripe.com/c/pay/cs_test_1",
	}, nil
}

type fakeVerifier struct {
	identity *identity.Identity
	err      error
	calls    int
}

func (v *fakeVerifier) Verify(context.Context, string) (*identity.Identity, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

type fakeCustomerService struct {
	mu sync.Mutex

	mappings    map[uuid.UUID]*models.CustomerMapping
	created     []*models.CustomerMapping
	softDeleted []string

	getErr    error
	createErr error
}

func newFakeCustomerService() *fakeCustomerService {
	return &fakeCustomerService{mappings: make(map[uuid.UUID]*models.CustomerMapping)}
}

func (s *fakeCustomerService) GetByUserID(_ context.Context, userID uuid.UUID) (*models.CustomerMapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.mappings[userID], nil
}

func (s *fakeCustomerService) Create(_ context.Context, mapping *models.CustomerMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, mapping)
	s.mappings[mapping.UserID] = mapping
	return nil
}

func (s *fakeCustomerService) SoftDelete(_ context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.softDeleted = append(s.softDeleted, customerID)
	return nil
}

type fakeSubscriptionService struct {
	mu sync.Mutex

	subs    map[string]*models.Subscription
	created []string
	deleted []string

	getErr    error
	createErr error
}

func newFakeSubscriptionService() *fakeSubscriptionService {
	return &fakeSubscriptionService{subs: make(map[string]*models.Subscription)}
}

func (s *fakeSubscriptionService) GetByCustomerID(_ context.Context, customerID string) (*models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.subs[customerID], nil
}

func (s *fakeSubscriptionService) CreateNotStarted(_ context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, customerID)
	s.subs[customerID] = &models.Subscription{CustomerID: customerID}
	return nil
}

func (s *fakeSubscriptionService) DeleteByCustomerID(_ context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleted = append(s.deleted, customerID)
	delete(s.subs, customerID)
	return nil
}

type recordedCheckout struct {
	userID     uuid.UUID
	customerID string
	payment    *models.Payment
}

type fakePaymentService struct {
	mu sync.Mutex

	recorded        []recordedCheckout
	markFailedCalls []string

	markFailedResult bool
	recordErr        error
	markFailedErr    error
}

func (s *fakePaymentService) RecordCheckoutCompleted(_ context.Context, userID uuid.UUID, stripeCustomerID string, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recordErr != nil {
		return s.recordErr
	}
	s.recorded = append(s.recorded, recordedCheckout{userID: userID, customerID: stripeCustomerID, payment: p})
	return nil
}

func (s *fakePaymentService) MarkFailed(_ context.Context, paymentIntentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.markFailedErr != nil {
		return false, s.markFailedErr
	}
	s.markFailedCalls = append(s.markFailedCalls, paymentIntentID)
	return s.markFailedResult, nil
}

func (s *fakePaymentService) recordedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recorded)
}

type fakeEventService struct {
	mu sync.Mutex

	claimed map[string]bool

	claimResult bool
	err         error
}

func newFakeEventService() *fakeEventService {
	return &fakeEventService{claimed: make(map[string]bool), claimResult: true}
}

func (s *fakeEventService) MarkEventAsProcessed(_ context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return false, s.err
	}
	s.claimed[eventID] = true
	return s.claimResult, nil
}

type fakeProvisioner struct {
	mu sync.Mutex

	emails []string
	err    error
}

func (p *fakeProvisioner) ProvisionAccount(_ context.Context, email string) (uuid.UUID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return uuid.Nil, p.err
	}
	p.emails = append(p.emails, email)
	return uuid.New(), nil
}
