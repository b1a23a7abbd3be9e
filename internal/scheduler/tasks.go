// Package scheduler runs deferred work over asynq: the backstop that makes
// sure no test reservation is left standing.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskEnsureBookingCancelled = "hotels.booking.ensure_cancelled"

type EnsureBookingCancelledPayload struct {
	OrderID string `json:"orderId"`
}

func NewEnsureBookingCancelledTask(payload EnsureBookingCancelledPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskEnsureBookingCancelled, data), nil
}

func ParseEnsureBookingCancelledPayload(task *asynq.Task) (EnsureBookingCancelledPayload, error) {
	var payload EnsureBookingCancelledPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return EnsureBookingCancelledPayload{}, err
	}
	return payload, nil
}
