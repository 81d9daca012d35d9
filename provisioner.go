package checkout

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountProvisioner turns a completed guest checkout into a local account.
// Provisioning itself lives outside this service; deployments with an
// account system inject their own implementation.
type AccountProvisioner interface {
	ProvisionAccount(ctx context.Context, email string) (uuid.UUID, error)
}

type noopProvisioner struct {
	logger *zap.Logger
}

func NewNoopProvisioner(logger *zap.Logger) AccountProvisioner {
	return &noopProvisioner{
		logger: logger,
	}
}

func (p *noopProvisioner) ProvisionAccount(_ context.Context, email string) (uuid.UUID, error) {
	p.logger.Info("guest checkout completed, account provisioning delegated",
		zap.String("checkout_email", email))
	return uuid.Nil, nil
}
