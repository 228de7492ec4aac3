package scheduling

import (
	"context"
	"errors"

	"coachly/models"
	"coachly/utils"

	"go.uber.org/zap"
)

// RestoreAvailability gives a cancelled or rescheduled booking's time back
// to the coach's calendar. Availability intervals that touch the reclaimed
// range on either boundary (exact instant equality) are merged with it into
// a single interval. The before-neighbor's attributes win the merge; the
// after-neighbor only extends the end. Must run inside a store transaction.
//
// Not idempotent: a second call for the same booking would find the merged
// interval as a neighbor and extend it again. Callers guard with the
// booking's RestoredAt marker.
func (se *DefaultSchedulingEngine) RestoreAvailability(ctx context.Context, cancelled *models.Booking) (*models.Interval, error) {
	logger := utils.GetLogger()

	if cancelled == nil {
		return nil, errors.New("cancelled booking is required")
	}
	if !cancelled.End.After(cancelled.Start) {
		return nil, &InvalidRangeError{Start: cancelled.Start, End: cancelled.End}
	}

	before, err := se.Repo.FindEndingAt(ctx, cancelled.CoachID, cancelled.Start)
	if err != nil {
		return nil, se.storeErr(err)
	}
	after, err := se.Repo.FindStartingAt(ctx, cancelled.CoachID, cancelled.End)
	if err != nil {
		return nil, se.storeErr(err)
	}

	merged := models.Interval{
		OwnerID: cancelled.CoachID,
		Start:   cancelled.Start,
		End:     cancelled.End,
		Kind:    models.KindAvailability,
		Status:  models.StatusConfirmed,
	}

	// Defaults come from the attributes snapshotted when the booking was
	// carved out of its slot.
	if snap := cancelled.SlotSnapshot; snap != nil {
		merged.Title = snap.Title
		merged.Recurrence = snap.Recurrence
		merged.InstantBookingEnabled = snap.InstantBookingEnabled
		merged.FirmBookingThresholdHours = snap.FirmBookingThresholdHours
	}

	var neighborIDs []string
	if before != nil {
		// The earlier-starting slot's configuration wins the merge. This
		// asymmetry is deliberate and load-bearing for compatibility.
		merged.Start = before.Start
		merged.Title = before.Title
		merged.Recurrence = before.Recurrence
		merged.InstantBookingEnabled = before.InstantBookingEnabled
		merged.FirmBookingThresholdHours = before.FirmBookingThresholdHours
		neighborIDs = append(neighborIDs, before.ID)
	}
	if after != nil {
		merged.End = after.End
		neighborIDs = append(neighborIDs, after.ID)
	}

	if err := se.Repo.DeleteMany(ctx, cancelled.CoachID, neighborIDs); err != nil {
		return nil, se.storeErr(err)
	}

	merged.SourceLineage = &models.SourceLineage{
		CoalescedFrom:     cancelled.ID,
		MergedNeighborIDs: neighborIDs,
	}

	created, err := se.Repo.InsertMany(ctx, []models.Interval{merged})
	if err != nil {
		return nil, se.storeErr(err)
	}

	logger.Debug("restored availability",
		zap.String("coachID", cancelled.CoachID),
		zap.String("bookingID", cancelled.ID),
		zap.Int("mergedNeighbors", len(neighborIDs)))

	return &created[0], nil
}
