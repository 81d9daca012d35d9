package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/checkout/models/enum"
)

var _ Repository = (*repository)(nil)

type Repository interface {
	ActivateSubscription(ctx context.Context, tx pgx.Tx, userID uuid.UUID, stripeCustomerID string) error
}

type repository struct {
	logger *zap.Logger
}

func NewRepository(logger *zap.Logger) Repository {
	return &repository{
		logger: logger,
	}
}

func (r *repository) ActivateSubscription(ctx context.Context, tx pgx.Tx, userID uuid.UUID, stripeCustomerID string) error {
	const query = `
		UPDATE users
		SET subscription_status = $2, stripe_customer_id = $3
		WHERE id = $1`

	if _, err := tx.Exec(ctx, query, userID, enum.SubscriptionStatusActive, stripeCustomerID); err != nil {
		r.logger.Error("error activating user subscription", zap.Error(err))
		return err
	}

	return nil
}
