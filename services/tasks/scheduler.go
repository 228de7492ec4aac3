package tasks

import (
	"context"
	"fmt"
	"time"

	"coachly/config"
	"coachly/models"

	"github.com/hibiken/asynq"
)

// AsynqScheduler enqueues deferred booking tasks on the Redis-backed queue.
type AsynqScheduler struct {
	client *asynq.Client
}

// NewAsynqScheduler builds a scheduler from the configured Redis queue DB.
func NewAsynqScheduler() *AsynqScheduler {
	return &AsynqScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisTaskQueueDB,
		}),
	}
}

// EnqueueCompletion schedules the completion sweep for a booking at its end time.
func (s *AsynqScheduler) EnqueueCompletion(ctx context.Context, bookingID string, at time.Time) error {
	task, opts, err := NewCompletionTask(models.CompletionPayload{BookingID: bookingID}, at)
	if err != nil {
		return fmt.Errorf("failed to build completion task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue completion task: %w", err)
	}
	return nil
}
