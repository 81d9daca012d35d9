package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/checkout/driver"
	"goflare.io/checkout/models"
)

type Service interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.CustomerMapping, error)
	Create(ctx context.Context, mapping *models.CustomerMapping) error
	SoftDelete(ctx context.Context, customerID string) error
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

func (s *service) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.CustomerMapping, error) {
	var mapping *models.CustomerMapping
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		mapping, err = s.repo.GetByUserID(ctx, tx, userID)
		return err
	})
	return mapping, err
}

func (s *service) Create(ctx context.Context, mapping *models.CustomerMapping) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Create(ctx, tx, mapping)
	})
}

func (s *service) SoftDelete(ctx context.Context, customerID string) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.SoftDelete(ctx, tx, customerID)
	})
}
