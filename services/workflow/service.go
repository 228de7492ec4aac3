package workflow

import (
	"context"
	"errors"
	"time"

	"coachly/models"
	"coachly/services/scheduling"
	"coachly/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// mirrorInterval projects a booking into the interval set, so overlap
// scans over kind "booking" see it without consulting the booking store.
// The interval shares the booking's ID.
func mirrorInterval(b *models.Booking) models.Interval {
	return models.Interval{
		ID:      b.ID,
		OwnerID: b.CoachID,
		Start:   b.Start,
		End:     b.End,
		Kind:    models.KindBooking,
		Status:  b.Status,
	}
}

// removeMirror drops a booking's interval projection. Missing is fine: the
// mirror may already be gone after a prior cancel or completion sweep.
func (w *DefaultBookingWorkflow) removeMirror(ctx context.Context, coachID, bookingID string) error {
	err := w.Intervals.DeleteByID(ctx, coachID, bookingID)
	if err == nil || errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return scheduling.ClassifyStoreError(err)
}

// RequestBooking runs the full conflict-check → insert → occupy sequence in
// one store transaction. On a transaction conflict the entire sequence is
// replayed from the bookability check, since the interval set may have
// changed underneath us; after the retry budget it surfaces as
// bookingUnavailable.
func (w *DefaultBookingWorkflow) RequestBooking(ctx context.Context, clientID string, payload models.RequestBookingPayload) (*models.Booking, error) {
	logger := utils.GetLogger()

	var booked *models.Booking
	err := w.withRetries(ctx, func() error {
		booked = nil
		return w.Intervals.RunInTransaction(ctx, func(txCtx context.Context) error {
			ok, err := w.Engine.IsSlotBookable(txCtx, payload.CoachID, payload.Start, payload.End, "")
			if err != nil {
				return err
			}
			if !ok {
				return ErrSlotNotBookable()
			}

			encompassing, err := w.Intervals.FindEncompassing(txCtx, payload.CoachID, payload.Start, payload.End)
			if err != nil {
				return scheduling.ClassifyStoreError(err)
			}
			if encompassing == nil {
				return &scheduling.PreconditionError{Message: "encompassing availability disappeared"}
			}

			booking := &models.Booking{
				CoachID:   payload.CoachID,
				ClientID:  clientID,
				Start:     payload.Start,
				End:       payload.End,
				Status:    w.decideStatus(encompassing, payload.Start),
				Notes:     payload.Notes,
				CreatedAt: w.now(),
			}
			if err := w.Bookings.Insert(txCtx, booking); err != nil {
				return scheduling.ClassifyStoreError(err)
			}

			if _, err := w.Engine.OccupyAvailability(txCtx, scheduling.OccupyRequest{
				OwnerID:    payload.CoachID,
				IntervalID: encompassing.ID,
				Start:      payload.Start,
				End:        payload.End,
				BookingID:  booking.ID,
			}); err != nil {
				return err
			}

			// Mirror the booking into the interval set so overlap scans
			// see claimed time directly.
			if _, err := w.Intervals.InsertMany(txCtx, []models.Interval{mirrorInterval(booking)}); err != nil {
				return scheduling.ClassifyStoreError(err)
			}

			booked = booking
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if w.Tasks != nil {
		if err := w.Tasks.EnqueueCompletion(ctx, booked.ID, booked.End); err != nil {
			logger.Error("failed to enqueue completion task",
				zap.String("bookingID", booked.ID), zap.Error(err))
		}
	}

	logger.Info("booking requested",
		zap.String("bookingID", booked.ID),
		zap.String("coachID", booked.CoachID),
		zap.String("status", booked.Status))
	return booked, nil
}

// CancelBooking transitions the booking to cancelled and gives its time
// back to the coach's calendar. Consumption, not status, decides the
// restore: every booking that carved availability carries a slot snapshot,
// whatever status it was given, and the RestoredAt marker makes the restore
// run at most once. Both are read inside the transaction, so a concurrent
// cancel that commits first is seen and the range is never coalesced twice.
func (w *DefaultBookingWorkflow) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	var cancelled *models.Booking
	err := w.withRetries(ctx, func() error {
		cancelled = nil
		return w.Intervals.RunInTransaction(ctx, func(txCtx context.Context) error {
			booking, err := w.Bookings.GetByID(txCtx, bookingID)
			if err != nil {
				return scheduling.ClassifyStoreError(err)
			}
			if booking == nil {
				return ErrBookingNotFound(bookingID)
			}

			if err := w.Bookings.UpdateStatus(txCtx, bookingID, models.StatusCancelled); err != nil {
				return scheduling.ClassifyStoreError(err)
			}
			if err := w.removeMirror(txCtx, booking.CoachID, bookingID); err != nil {
				return err
			}

			booking.Status = models.StatusCancelled
			cancelled = booking

			if booking.SlotSnapshot == nil || booking.RestoredAt != nil {
				return nil
			}
			if _, err := w.Engine.RestoreAvailability(txCtx, booking); err != nil {
				return err
			}
			return scheduling.ClassifyStoreError(w.Bookings.MarkRestored(txCtx, bookingID, w.now()))
		})
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// RescheduleBooking moves a booking to a new range: the old range is
// coalesced back into availability and the new range is checked and
// occupied, all in a single transaction so no one can take either range
// mid-move. The booking is re-read inside the transaction; as with cancel,
// the slot snapshot and RestoredAt marker decide whether the old range is
// given back first.
func (w *DefaultBookingWorkflow) RescheduleBooking(ctx context.Context, bookingID string, newStart, newEnd time.Time) (*models.Booking, error) {
	var moved *models.Booking
	err := w.withRetries(ctx, func() error {
		moved = nil
		return w.Intervals.RunInTransaction(ctx, func(txCtx context.Context) error {
			booking, err := w.Bookings.GetByID(txCtx, bookingID)
			if err != nil {
				return scheduling.ClassifyStoreError(err)
			}
			if booking == nil {
				return ErrBookingNotFound(bookingID)
			}

			if err := w.removeMirror(txCtx, booking.CoachID, bookingID); err != nil {
				return err
			}
			if booking.SlotSnapshot != nil && booking.RestoredAt == nil {
				if _, err := w.Engine.RestoreAvailability(txCtx, booking); err != nil {
					return err
				}
			}

			ok, err := w.Engine.IsSlotBookable(txCtx, booking.CoachID, newStart, newEnd, booking.ID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrSlotNotBookable()
			}

			encompassing, err := w.Intervals.FindEncompassing(txCtx, booking.CoachID, newStart, newEnd)
			if err != nil {
				return scheduling.ClassifyStoreError(err)
			}
			if encompassing == nil {
				return &scheduling.PreconditionError{Message: "encompassing availability disappeared"}
			}

			if err := w.Bookings.Reschedule(txCtx, bookingID, newStart, newEnd, models.StatusReschedulePending); err != nil {
				return scheduling.ClassifyStoreError(err)
			}

			if _, err := w.Engine.OccupyAvailability(txCtx, scheduling.OccupyRequest{
				OwnerID:    booking.CoachID,
				IntervalID: encompassing.ID,
				Start:      newStart,
				End:        newEnd,
				BookingID:  bookingID,
			}); err != nil {
				return err
			}

			m := *booking
			m.Start, m.End, m.Status, m.RestoredAt = newStart, newEnd, models.StatusReschedulePending, nil
			if _, err := w.Intervals.InsertMany(txCtx, []models.Interval{mirrorInterval(&m)}); err != nil {
				return scheduling.ClassifyStoreError(err)
			}
			moved = &m
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// decideStatus picks the initial booking status from the consumed slot's
// flags: instant booking auto-confirms; a lead time beyond the slot's firm
// threshold books firm without coach approval; everything else waits as a
// request.
func (w *DefaultBookingWorkflow) decideStatus(slot *models.Interval, start time.Time) string {
	if slot.InstantBookingEnabled {
		return models.StatusConfirmed
	}
	if slot.FirmBookingThresholdHours > 0 {
		lead := start.Sub(w.now()).Hours()
		if lead > slot.FirmBookingThresholdHours {
			return models.StatusFirmBooked
		}
	}
	return models.StatusRequested
}

// withRetries replays fn after retryable conflicts with linear backoff.
func (w *DefaultBookingWorkflow) withRetries(ctx context.Context, fn func() error) error {
	logger := utils.GetLogger()

	var err error
	for attempt := 1; attempt <= w.maxRetries(); attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !scheduling.IsConflictRetryable(err) && !scheduling.IsPreconditionFailure(err) {
			return err
		}
		logger.Warn("booking sequence lost a transaction conflict, retrying",
			zap.Int("attempt", attempt), zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * w.retryBackoff()):
		}
	}
	return ErrBookingUnavailable()
}
