package event

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	processedKeyPrefix = "processed_events:"

	// Stripe redelivers for up to 72 hours; keys older than that are dead weight.
	processedTTL = 72 * time.Hour
)

// Service guards against duplicate webhook deliveries.
type Service interface {
	// MarkEventAsProcessed claims the event id. It returns false when the
	// event was already claimed by an earlier delivery.
	MarkEventAsProcessed(ctx context.Context, eventID string) (bool, error)
}

type service struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(rdb *redis.Client, logger *zap.Logger) Service {
	return &service{
		rdb:    rdb,
		logger: logger,
	}
}

func (s *service) MarkEventAsProcessed(ctx context.Context, eventID string) (bool, error) {
	claimed, err := s.rdb.SetNX(ctx, processedKeyPrefix+eventID, 1, processedTTL).Result()
	if err != nil {
		s.logger.Error("error claiming webhook event", zap.String("event_id", eventID), zap.Error(err))
		return false, err
	}

	return claimed, nil
}
