package customer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"goflare.io/checkout/models"
)

// ErrDuplicateMapping is returned when a non-deleted mapping already exists
// for the user. The partial unique index on stripe_customers enforces this,
// so a concurrent first-checkout loses with a distinguishable error instead
// of writing a second row.
var ErrDuplicateMapping = errors.New("customer mapping already exists for user")

var _ Repository = (*repository)(nil)

type Repository interface {
	GetByUserID(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*models.CustomerMapping, error)
	Create(ctx context.Context, tx pgx.Tx, mapping *models.CustomerMapping) error
	SoftDelete(ctx context.Context, tx pgx.Tx, customerID string) error
}

type repository struct {
	logger *zap.Logger
}

func NewRepository(logger *zap.Logger) Repository {
	return &repository{
		logger: logger,
	}
}

// GetByUserID returns the non-deleted mapping for the user, or nil when none exists.
func (r *repository) GetByUserID(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*models.CustomerMapping, error) {
	const query = `
		SELECT id, user_id, customer_id, created_at, deleted_at
		FROM stripe_customers
		WHERE user_id = $1 AND deleted_at IS NULL`

	mapping := new(models.CustomerMapping)
	err := tx.QueryRow(ctx, query, userID).Scan(
		&mapping.ID,
		&mapping.UserID,
		&mapping.CustomerID,
		&mapping.CreatedAt,
		&mapping.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("error getting customer mapping", zap.Error(err))
		return nil, err
	}

	return mapping, nil
}

func (r *repository) Create(ctx context.Context, tx pgx.Tx, mapping *models.CustomerMapping) error {
	const query = `
		INSERT INTO stripe_customers (user_id, customer_id)
		VALUES ($1, $2)`

	if _, err := tx.Exec(ctx, query, mapping.UserID, mapping.CustomerID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateMapping
		}
		r.logger.Error("error creating customer mapping", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, tx pgx.Tx, customerID string) error {
	const query = `
		UPDATE stripe_customers
		SET deleted_at = now()
		WHERE customer_id = $1 AND deleted_at IS NULL`

	if _, err := tx.Exec(ctx, query, customerID); err != nil {
		r.logger.Error("error soft-deleting customer mapping", zap.Error(err))
		return err
	}

	return nil
}
