package tasks

import (
	"encoding/json"
	"time"

	"coachly/models"

	"github.com/hibiken/asynq"
)

const TypeBookingComplete = "booking:complete"

// NewCompletionTask builds the deferred task that marks a booking completed
// once its end time has passed.
func NewCompletionTask(payload models.CompletionPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingComplete, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
