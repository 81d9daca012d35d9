package subscription

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/checkout/driver"
	"goflare.io/checkout/models"
	"goflare.io/checkout/models/enum"
)

type Service interface {
	GetByCustomerID(ctx context.Context, customerID string) (*models.Subscription, error)
	CreateNotStarted(ctx context.Context, customerID string) error
	DeleteByCustomerID(ctx context.Context, customerID string) error
}

type service struct {
	repo               Repository
	transactionManager *driver.TransactionManager
	logger             *zap.Logger
}

func NewService(repo Repository, tm *driver.TransactionManager, logger *zap.Logger) Service {
	return &service{
		repo:               repo,
		transactionManager: tm,
		logger:             logger,
	}
}

func (s *service) GetByCustomerID(ctx context.Context, customerID string) (*models.Subscription, error) {
	var sub *models.Subscription
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		sub, err = s.repo.GetByCustomerID(ctx, tx, customerID)
		return err
	})
	return sub, err
}

// CreateNotStarted bootstraps the subscription record at checkout time.
// Webhook reconciliation owns all later status transitions.
func (s *service) CreateNotStarted(ctx context.Context, customerID string) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Create(ctx, tx, customerID, enum.SubscriptionStatusNotStarted)
	})
}

func (s *service) DeleteByCustomerID(ctx context.Context, customerID string) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.DeleteByCustomerID(ctx, tx, customerID)
	})
}
