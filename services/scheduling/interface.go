package scheduling

import (
	"context"
	"time"

	bookingRepo "coachly/database/repository/booking"
	intervalRepo "coachly/database/repository/interval"
	"coachly/models"
)

// OccupyRequest names the availability interval a confirmed booking is
// being carved out of.
type OccupyRequest struct {
	OwnerID    string
	IntervalID string
	Start      time.Time
	End        time.Time
	BookingID  string
}

// OccupyResult reports the interval that was consumed and the residual
// availability created in its place.
type OccupyResult struct {
	DeletedID string
	Created   []models.Interval
	Source    models.SlotSnapshot
}

// SchedulingEngine is the availability-slot and booking-conflict core. The
// mutating operations expect to run inside a store transaction: the caller
// wraps the whole check-and-mutate sequence in
// IntervalRepository.RunInTransaction and passes the session context down.
type SchedulingEngine interface {
	IsSlotBookable(ctx context.Context, ownerID string, start, end time.Time, excludeBookingID string) (bool, error)
	OccupyAvailability(ctx context.Context, req OccupyRequest) (*OccupyResult, error)
	RestoreAvailability(ctx context.Context, cancelled *models.Booking) (*models.Interval, error)
}

// DefaultSchedulingEngine is the production implementation.
type DefaultSchedulingEngine struct {
	Repo        intervalRepo.IntervalRepository
	BookingRepo bookingRepo.BookingRepository
}

// ClassifyStoreError maps a repository failure into the engine's error
// taxonomy: transaction aborts become ConflictRetryableError, connectivity
// failures become StoreUnavailableError, anything else passes through.
func ClassifyStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case intervalRepo.IsTransientTxnError(err):
		return &ConflictRetryableError{Err: err}
	case intervalRepo.IsUnavailableError(err):
		return &StoreUnavailableError{Err: err}
	default:
		return err
	}
}

func (se *DefaultSchedulingEngine) storeErr(err error) error {
	return ClassifyStoreError(err)
}
