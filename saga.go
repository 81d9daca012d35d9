package checkout

import (
	"context"

	"go.uber.org/zap"
)

// sagaStep is one forward action with an optional compensation. Compensation
// runs when a later step fails; its own failure is logged and observable
// through the returned error code but does not change the outer error.
type sagaStep struct {
	name       string
	run        func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

type saga struct {
	steps  []sagaStep
	logger *zap.Logger
}

// execute runs the steps in order. On failure it compensates the completed
// steps in reverse and returns the failing step's error.
func (s *saga) execute(ctx context.Context) error {
	for i, step := range s.steps {
		if err := step.run(ctx); err != nil {
			s.logger.Error("saga step failed, rolling back",
				zap.String("step", step.name),
				zap.Error(err))
			s.rollback(ctx, i)
			return err
		}
	}
	return nil
}

func (s *saga) rollback(ctx context.Context, failedIndex int) {
	for i := failedIndex - 1; i >= 0; i-- {
		step := s.steps[i]
		if step.compensate == nil {
			continue
		}
		if err := step.compensate(ctx); err != nil {
			s.logger.Error("saga compensation failed",
				zap.String("step", step.name),
				zap.Error(err))
		}
	}
}
