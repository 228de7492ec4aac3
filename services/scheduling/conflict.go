package scheduling

import (
	"context"
	"time"

	"coachly/models"
)

// IsSlotBookable reports whether [start, end) can be booked for the given
// coach: no active booking may overlap it, and a single confirmed
// availability interval must fully encompass it. Partial coverage is not
// bookable. Read-only.
func (se *DefaultSchedulingEngine) IsSlotBookable(ctx context.Context, ownerID string, start, end time.Time, excludeBookingID string) (bool, error) {
	if !end.After(start) {
		return false, &InvalidRangeError{Start: start, End: end}
	}

	conflicts, err := se.Repo.FindOverlapping(ctx, ownerID, models.KindBooking, models.ActiveBookingStatuses, start, end, excludeBookingID)
	if err != nil {
		return false, se.storeErr(err)
	}
	if len(conflicts) > 0 {
		return false, nil
	}

	encompassing, err := se.Repo.FindEncompassing(ctx, ownerID, start, end)
	if err != nil {
		return false, se.storeErr(err)
	}
	return encompassing != nil, nil
}
