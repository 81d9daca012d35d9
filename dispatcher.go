package checkout

import (
	"context"
	"sync"

	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

// Dispatcher hands verified webhook events to a fixed pool of workers
// through a buffered queue.
type Dispatcher struct {
	WorkerPool chan chan WorkRequest
	maxWorkers int
	jobQueue   chan WorkRequest
	checkout   *StripeCheckout
	workers    []Worker
	stop       chan bool
	wg         sync.WaitGroup
}

func NewDispatcher(maxWorkers, jobQueueSize int, sc *StripeCheckout) *Dispatcher {
	return &Dispatcher{
		WorkerPool: make(chan chan WorkRequest, maxWorkers),
		maxWorkers: maxWorkers,
		jobQueue:   make(chan WorkRequest, jobQueueSize),
		checkout:   sc,
		stop:       make(chan bool),
	}
}

func (d *Dispatcher) Run() {
	for i := 0; i < d.maxWorkers; i++ {
		worker := NewWorker(i+1, d.WorkerPool, d.checkout)
		worker.Start()
		d.workers = append(d.workers, worker)
	}

	d.wg.Add(1)
	go d.dispatch()
}

// Submit enqueues an event for processing. It blocks when the queue is full
// until space frees up or ctx is done.
func (d *Dispatcher) Submit(ctx context.Context, event *stripe.Event) {
	select {
	case d.jobQueue <- WorkRequest{Event: event, Ctx: ctx}:
	case <-ctx.Done():
		d.checkout.logger.Warn("event dropped before dispatch",
			zap.Error(ctx.Err()),
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID))
	}
}

func (d *Dispatcher) dispatch() {
	defer d.wg.Done()

	for {
		select {
		case job := <-d.jobQueue:
			select {
			case jobChannel := <-d.WorkerPool:
				jobChannel <- job
			case <-job.Ctx.Done():
				d.checkout.logger.Warn("job context canceled while waiting for available worker",
					zap.Error(job.Ctx.Err()),
					zap.String("event_type", string(job.Event.Type)),
					zap.String("event_id", job.Event.ID))
			}
		case <-d.stop:
			return
		}
	}
}

func (d *Dispatcher) Stop() {
	close(d.stop)
	d.wg.Wait()

	for _, worker := range d.workers {
		worker.Stop()
	}
}
