package availability

import (
	"context"
	"time"

	"coachly/models"
	"coachly/services/scheduling"
	"coachly/utils"

	"go.uber.org/zap"
)

var validPatterns = map[string]bool{
	models.RecurrenceNone:     true,
	models.RecurrenceDaily:    true,
	models.RecurrenceWeekly:   true,
	models.RecurrenceBiweekly: true,
	models.RecurrenceMonthly:  true,
}

// PublishSlot creates a new confirmed availability interval for the coach.
// Overlapping an existing availability interval is rejected so the coach's
// open time stays a set of non-overlapping ranges.
func (s *DefaultAvailabilityService) PublishSlot(ctx context.Context, coachID string, req models.CreateAvailabilityRequest) (*models.Interval, error) {
	if !req.End.After(req.Start) {
		return nil, NewSlotError("invalidRange", "slot end must be after start")
	}
	pattern := req.RecurrencePattern
	if pattern == "" {
		pattern = models.RecurrenceNone
	}
	if !validPatterns[pattern] {
		return nil, NewSlotError("invalidPattern", "unknown recurrence pattern "+pattern)
	}

	existing, err := s.Repo.FindOverlapping(ctx, coachID, models.KindAvailability,
		[]string{models.StatusConfirmed}, req.Start, req.End, "")
	if err != nil {
		return nil, scheduling.ClassifyStoreError(err)
	}
	if len(existing) > 0 {
		return nil, NewSlotError("slotOverlap", "the new slot overlaps existing availability")
	}

	slot := models.Interval{
		OwnerID:                   coachID,
		Start:                     req.Start.UTC(),
		End:                       req.End.UTC(),
		Kind:                      models.KindAvailability,
		Status:                    models.StatusConfirmed,
		Title:                     req.Title,
		InstantBookingEnabled:     req.InstantBookingEnabled,
		FirmBookingThresholdHours: req.FirmBookingThresholdHours,
	}
	if pattern != models.RecurrenceNone {
		slot.Recurrence = &models.Recurrence{Pattern: pattern, EndDate: req.RecurrenceEndDate}
	}

	created, err := s.Repo.InsertMany(ctx, []models.Interval{slot})
	if err != nil {
		return nil, scheduling.ClassifyStoreError(err)
	}

	utils.GetLogger().Info("availability slot published",
		zap.String("coachID", coachID),
		zap.String("slotID", created[0].ID),
		zap.String("pattern", pattern))
	return &created[0], nil
}

// ListDay returns the coach's bookable occurrences for a calendar day. Each
// stored slot is screened through the recurrence evaluator; recurring slots
// are projected onto the requested date keeping their time of day.
func (s *DefaultAvailabilityService) ListDay(ctx context.Context, coachID string, day time.Time) ([]models.Interval, error) {
	slots, err := s.Repo.FindAvailabilityByOwner(ctx, coachID)
	if err != nil {
		return nil, scheduling.ClassifyStoreError(err)
	}

	var occurrences []models.Interval
	for _, slot := range slots {
		if !scheduling.IsDateInRecurrence(day, slot) {
			continue
		}
		occurrences = append(occurrences, projectOntoDay(slot, day))
	}
	return occurrences, nil
}

// RemoveSlot deletes an availability interval the coach owns.
func (s *DefaultAvailabilityService) RemoveSlot(ctx context.Context, coachID, slotID string) error {
	slot, err := s.Repo.GetByID(ctx, coachID, slotID)
	if err != nil {
		return scheduling.ClassifyStoreError(err)
	}
	if slot == nil || slot.Kind != models.KindAvailability {
		return NewSlotError("slotNotFound", "no availability slot with id "+slotID)
	}
	if err := s.Repo.DeleteByID(ctx, coachID, slotID); err != nil {
		return scheduling.ClassifyStoreError(err)
	}
	return nil
}

// projectOntoDay shifts a slot's range onto the given date, preserving its
// time of day and duration. A recurring projection is a read-only view, not
// a stored document: its ID is cleared so clients cannot delete the whole
// series through a single occurrence.
func projectOntoDay(slot models.Interval, day time.Time) models.Interval {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(),
		slot.Start.UTC().Hour(), slot.Start.UTC().Minute(), slot.Start.UTC().Second(), 0, time.UTC)
	occurrence := slot
	if slot.Recurrence != nil {
		occurrence.ID = ""
	}
	occurrence.Start = start
	occurrence.End = start.Add(slot.End.Sub(slot.Start))
	return occurrence
}
