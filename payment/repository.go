package payment

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/checkout/models"
	"goflare.io/checkout/models/enum"
)

var _ Repository = (*repository)(nil)

type Repository interface {
	UpsertSucceeded(ctx context.Context, tx pgx.Tx, p *models.Payment) error
	MarkFailed(ctx context.Context, tx pgx.Tx, paymentIntentID string) (int64, error)
}

type repository struct {
	logger *zap.Logger
}

func NewRepository(logger *zap.Logger) Repository {
	return &repository{
		logger: logger,
	}
}

// UpsertSucceeded records a succeeded payment keyed on the payment intent id.
// Redelivered checkout.session.completed events update the same row instead
// of inserting a duplicate.
func (r *repository) UpsertSucceeded(ctx context.Context, tx pgx.Tx, p *models.Payment) error {
	const query = `
		INSERT INTO payments (user_id, stripe_payment_intent_id, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (stripe_payment_intent_id)
		DO UPDATE SET amount = EXCLUDED.amount, currency = EXCLUDED.currency,
		              status = EXCLUDED.status, updated_at = now()`

	if _, err := tx.Exec(ctx, query, p.UserID, p.PaymentIntentID, p.Amount, p.Currency, enum.PaymentStatusSucceeded); err != nil {
		r.logger.Error("error upserting payment record", zap.Error(err))
		return err
	}

	return nil
}

// MarkFailed flips an existing record to failed and reports how many rows
// matched. Zero rows is a caller-level no-op, not an error.
func (r *repository) MarkFailed(ctx context.Context, tx pgx.Tx, paymentIntentID string) (int64, error) {
	const query = `
		UPDATE payments
		SET status = $2, updated_at = now()
		WHERE stripe_payment_intent_id = $1`

	ct, err := tx.Exec(ctx, query, paymentIntentID, enum.PaymentStatusFailed)
	if err != nil {
		r.logger.Error("error marking payment as failed", zap.Error(err))
		return 0, err
	}

	return ct.RowsAffected(), nil
}
