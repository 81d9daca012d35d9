package subscription

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/checkout/models"
	"goflare.io/checkout/models/enum"
)

var _ Repository = (*repository)(nil)

type Repository interface {
	GetByCustomerID(ctx context.Context, tx pgx.Tx, customerID string) (*models.Subscription, error)
	Create(ctx context.Context, tx pgx.Tx, customerID string, status enum.SubscriptionStatus) error
	DeleteByCustomerID(ctx context.Context, tx pgx.Tx, customerID string) error
}

type repository struct {
	logger *zap.Logger
}

func NewRepository(logger *zap.Logger) Repository {
	return &repository{
		logger: logger,
	}
}

// GetByCustomerID returns the subscription record for the customer, or nil
// when none exists.
func (r *repository) GetByCustomerID(ctx context.Context, tx pgx.Tx, customerID string) (*models.Subscription, error) {
	const query = `
		SELECT id, customer_id, status, created_at, updated_at
		FROM stripe_subscriptions
		WHERE customer_id = $1`

	sub := new(models.Subscription)
	err := tx.QueryRow(ctx, query, customerID).Scan(
		&sub.ID,
		&sub.CustomerID,
		&sub.Status,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("error getting subscription record", zap.Error(err))
		return nil, err
	}

	return sub, nil
}

func (r *repository) Create(ctx context.Context, tx pgx.Tx, customerID string, status enum.SubscriptionStatus) error {
	const query = `
		INSERT INTO stripe_subscriptions (customer_id, status)
		VALUES ($1, $2)`

	if _, err := tx.Exec(ctx, query, customerID, status); err != nil {
		r.logger.Error("error creating subscription record", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) DeleteByCustomerID(ctx context.Context, tx pgx.Tx, customerID string) error {
	const query = `DELETE FROM stripe_subscriptions WHERE customer_id = $1`

	if _, err := tx.Exec(ctx, query, customerID); err != nil {
		r.logger.Error("error deleting subscription records", zap.Error(err))
		return err
	}

	return nil
}
