package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

type Worker struct {
	ID         int
	WorkerPool chan chan WorkRequest
	JobChannel chan WorkRequest
	quit       chan bool
	checkout   *StripeCheckout
}

type WorkRequest struct {
	Event *stripe.Event
	Ctx   context.Context
}

func NewWorker(id int, workerPool chan chan WorkRequest, sc *StripeCheckout) Worker {
	return Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan WorkRequest),
		quit:       make(chan bool),
		checkout:   sc,
	}
}

func (w Worker) Start() {
	go func() {
		for {
			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.checkout.logger.Info("processing webhook event",
					zap.String("event_type", string(job.Event.Type)),
					zap.String("event_id", job.Event.ID))

				if err := w.checkout.processEvent(job.Ctx, job.Event); err != nil {
					w.checkout.logger.Error("error processing webhook event",
						zap.Error(err),
						zap.String("event_type", string(job.Event.Type)),
						zap.String("event_id", job.Event.ID))
				} else {
					w.checkout.logger.Info("webhook event processed",
						zap.String("event_type", string(job.Event.Type)),
						zap.String("event_id", job.Event.ID))
				}

			case <-w.quit:
				return
			}
		}
	}()
}

func (w Worker) Stop() {
	close(w.quit)
}
