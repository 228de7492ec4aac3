package scheduling

import (
	"context"
	"time"

	"coachly/models"
	"coachly/utils"

	"go.uber.org/zap"
)

// OccupyAvailability carves [req.Start, req.End) out of the named
// availability interval: up to two residual intervals are created for the
// uncovered remainder, the original is deleted, and the source slot's
// attributes are recorded on the booking so they can be restored on
// cancellation. Must run inside a store transaction; coverage itself is the
// caller's responsibility (established via IsSlotBookable in the same
// transaction), but structural validity is re-checked and a stale read
// fails with PreconditionError.
func (se *DefaultSchedulingEngine) OccupyAvailability(ctx context.Context, req OccupyRequest) (*OccupyResult, error) {
	logger := utils.GetLogger()

	if !req.End.After(req.Start) {
		return nil, &InvalidRangeError{Start: req.Start, End: req.End}
	}

	src, err := se.Repo.GetByID(ctx, req.OwnerID, req.IntervalID)
	if err != nil {
		return nil, se.storeErr(err)
	}
	if src == nil {
		return nil, &PreconditionError{IntervalID: req.IntervalID, Message: "interval not found"}
	}
	if src.Kind != models.KindAvailability || src.Status != models.StatusConfirmed {
		return nil, &PreconditionError{IntervalID: req.IntervalID, Message: "interval is not confirmed availability"}
	}
	if !src.Encompasses(req.Start, req.End) {
		return nil, &PreconditionError{IntervalID: req.IntervalID, Message: "interval does not encompass the requested range"}
	}

	var residuals []models.Interval
	if req.Start.After(src.Start) {
		residuals = append(residuals, residualFrom(src, src.Start, req.Start, models.ActionCarveBefore))
	}
	if req.End.Before(src.End) {
		residuals = append(residuals, residualFrom(src, req.End, src.End, models.ActionCarveAfter))
	}

	created, err := se.Repo.InsertMany(ctx, residuals)
	if err != nil {
		return nil, se.storeErr(err)
	}
	if err := se.Repo.DeleteByID(ctx, req.OwnerID, req.IntervalID); err != nil {
		return nil, se.storeErr(err)
	}

	snap := models.SlotSnapshot{
		IntervalID:                src.ID,
		Title:                     src.Title,
		Recurrence:                src.Recurrence,
		InstantBookingEnabled:     src.InstantBookingEnabled,
		FirmBookingThresholdHours: src.FirmBookingThresholdHours,
	}
	if req.BookingID != "" {
		if err := se.BookingRepo.SetSlotSnapshot(ctx, req.BookingID, snap); err != nil {
			return nil, se.storeErr(err)
		}
	}

	logger.Debug("occupied availability interval",
		zap.String("ownerID", req.OwnerID),
		zap.String("intervalID", src.ID),
		zap.Int("residuals", len(created)))

	return &OccupyResult{DeletedID: src.ID, Created: created, Source: snap}, nil
}

// residualFrom copies all non-temporal attributes of the source interval
// into a new availability fragment covering [start, end).
func residualFrom(src *models.Interval, start, end time.Time, action string) models.Interval {
	return models.Interval{
		OwnerID:                   src.OwnerID,
		Start:                     start,
		End:                       end,
		Kind:                      models.KindAvailability,
		Status:                    models.StatusConfirmed,
		Title:                     src.Title,
		Recurrence:                src.Recurrence,
		InstantBookingEnabled:     src.InstantBookingEnabled,
		FirmBookingThresholdHours: src.FirmBookingThresholdHours,
		SourceLineage: &models.SourceLineage{
			SplitFrom: src.ID,
			Action:    action,
		},
	}
}
