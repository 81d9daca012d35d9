package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/checkout/driver"
	"goflare.io/checkout/models"
	"goflare.io/checkout/user"
)

type Service interface {
	// RecordCheckoutCompleted activates the user's subscription and upserts
	// the succeeded payment record in a single transaction, so a completed
	// checkout never half-applies.
	RecordCheckoutCompleted(ctx context.Context, userID uuid.UUID, stripeCustomerID string, p *models.Payment) error
	MarkFailed(ctx context.Context, paymentIntentID string) (bool, error)
}

type service struct {
	repo               Repository
	users              user.Repository
	transactionManager *driver.TransactionManager
	logger             *zap.Logger
}

func NewService(repo Repository, users user.Repository, tm *driver.TransactionManager, logger *zap.Logger) Service {
	return &service{
		repo:               repo,
		users:              users,
		transactionManager: tm,
		logger:             logger,
	}
}

func (s *service) RecordCheckoutCompleted(ctx context.Context, userID uuid.UUID, stripeCustomerID string, p *models.Payment) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.users.ActivateSubscription(ctx, tx, userID, stripeCustomerID); err != nil {
			return err
		}
		return s.repo.UpsertSucceeded(ctx, tx, p)
	})
}

func (s *service) MarkFailed(ctx context.Context, paymentIntentID string) (bool, error) {
	var updated int64
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		updated, err = s.repo.MarkFailed(ctx, tx, paymentIntentID)
		return err
	})
	return updated > 0, err
}
