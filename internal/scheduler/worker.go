package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"utrippin_backend/internal/hotels/transport"
	"utrippin_backend/platform/config"
	"utrippin_backend/platform/logger"
)

// BookingCanceller is the slice of the hotels service the worker needs.
type BookingCanceller interface {
	Status(ctx context.Context, orderID string) (*transport.StatusResponse, error)
	Cancel(ctx context.Context, orderID string) (*transport.CancelData, error)
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	canceller BookingCanceller
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, canceller BookingCanceller, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		canceller: canceller,
		log:       log,
	}

	mux.HandleFunc(TaskEnsureBookingCancelled, w.handleEnsureBookingCancelled)

	return w, nil
}

// handleEnsureBookingCancelled re-checks a test reservation and cancels it
// if anything left it standing. An error makes asynq retry the task.
func (w *Worker) handleEnsureBookingCancelled(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseEnsureBookingCancelledPayload(task)
	if err != nil {
		return err
	}

	snap, err := w.canceller.Status(ctx, payload.OrderID)
	if err != nil {
		return err
	}
	if snap.CancellationStatus == "cancelled" {
		return nil
	}

	w.log.Warn("test reservation still standing, cancelling", "order_id", payload.OrderID)
	_, err = w.canceller.Cancel(ctx, payload.OrderID)
	return err
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
