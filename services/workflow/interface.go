package workflow

import (
	"context"
	"time"

	bookingRepo "coachly/database/repository/booking"
	intervalRepo "coachly/database/repository/interval"
	"coachly/models"
	"coachly/services/scheduling"
	"coachly/utils"
)

// TaskScheduler enqueues deferred booking housekeeping (the completion
// sweep that runs when a session's end time passes).
type TaskScheduler interface {
	EnqueueCompletion(ctx context.Context, bookingID string, at time.Time) error
}

// BookingWorkflow drives the booking lifecycle: it decides when the
// scheduling engine's check, occupy and restore operations run, always
// inside a single store transaction per mutation.
type BookingWorkflow interface {
	RequestBooking(ctx context.Context, clientID string, payload models.RequestBookingPayload) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	RescheduleBooking(ctx context.Context, bookingID string, newStart, newEnd time.Time) (*models.Booking, error)
}

// DefaultBookingWorkflow is the production implementation.
type DefaultBookingWorkflow struct {
	Engine    scheduling.SchedulingEngine
	Intervals intervalRepo.IntervalRepository
	Bookings  bookingRepo.BookingRepository
	Tasks     TaskScheduler
	Clock     utils.Clock

	// MaxRetries bounds how often the whole check-and-mutate sequence is
	// replayed after a store-level transaction conflict.
	MaxRetries   int
	RetryBackoff time.Duration
}

const (
	defaultMaxRetries   = 3
	defaultRetryBackoff = 50 * time.Millisecond
)

func (w *DefaultBookingWorkflow) maxRetries() int {
	if w.MaxRetries > 0 {
		return w.MaxRetries
	}
	return defaultMaxRetries
}

func (w *DefaultBookingWorkflow) retryBackoff() time.Duration {
	if w.RetryBackoff > 0 {
		return w.RetryBackoff
	}
	return defaultRetryBackoff
}

func (w *DefaultBookingWorkflow) now() time.Time {
	if w.Clock != nil {
		return w.Clock.Now()
	}
	return time.Now().UTC()
}
