package models

import "time"

// Interval kinds.
const (
	KindAvailability = "availability"
	KindBooking      = "booking"
)

// Availability interval status.
const StatusConfirmed = "confirmed"

// Booking statuses.
const (
	StatusRequested          = "requested"
	StatusPendingPayment     = "pending_payment"
	StatusScheduled          = "scheduled"
	StatusFirmBooked         = "firm_booked"
	StatusReschedulePending  = "rescheduled_pending_attendee_actions"
	StatusRescheduled        = "rescheduled"
	StatusCancelled          = "cancelled"
	StatusDeclined           = "declined"
	StatusCompleted          = "completed"
)

// ActiveBookingStatuses are the booking statuses that still occupy time
// for conflict purposes.
var ActiveBookingStatuses = []string{
	StatusConfirmed,
	StatusPendingPayment,
	StatusReschedulePending,
	StatusScheduled,
	StatusFirmBooked,
}

// IsActiveStatus reports whether a booking status occupies time.
func IsActiveStatus(status string) bool {
	for _, s := range ActiveBookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Recurrence patterns.
const (
	RecurrenceNone     = "none"
	RecurrenceDaily    = "daily"
	RecurrenceWeekly   = "weekly"
	RecurrenceBiweekly = "biweekly"
	RecurrenceMonthly  = "monthly"
)

// Recurrence describes how an availability interval repeats.
type Recurrence struct {
	Pattern string     `bson:"pattern" json:"pattern"`
	EndDate *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
}

// Lineage actions recorded when an interval is derived from another.
const (
	ActionCarveBefore = "carve_before"
	ActionCarveAfter  = "carve_after"
)

// SourceLineage records which interval(s) an interval was split or merged
// from. Audit metadata only; never consulted for ownership.
type SourceLineage struct {
	SplitFrom         string   `bson:"splitFrom,omitempty" json:"splitFrom,omitempty"`
	Action            string   `bson:"action,omitempty" json:"action,omitempty"`
	CoalescedFrom     string   `bson:"coalescedFrom,omitempty" json:"coalescedFrom,omitempty"`
	MergedNeighborIDs []string `bson:"mergedNeighborIds,omitempty" json:"mergedNeighborIds,omitempty"`
}

// Interval is a coach's time range: either open availability or time
// claimed by a booking. Start/End are UTC instants with Start < End.
type Interval struct {
	ID                        string         `bson:"id" json:"id"`
	OwnerID                   string         `bson:"ownerId" json:"ownerId"`
	Start                     time.Time      `bson:"start" json:"start"`
	End                       time.Time      `bson:"end" json:"end"`
	Kind                      string         `bson:"kind" json:"kind"`
	Status                    string         `bson:"status" json:"status"`
	Title                     string         `bson:"title,omitempty" json:"title,omitempty"`
	Recurrence                *Recurrence    `bson:"recurrence,omitempty" json:"recurrence,omitempty"`
	InstantBookingEnabled     bool           `bson:"instantBookingEnabled" json:"instantBookingEnabled"`
	FirmBookingThresholdHours float64        `bson:"firmBookingThresholdHours,omitempty" json:"firmBookingThresholdHours,omitempty"`
	SourceLineage             *SourceLineage `bson:"sourceLineage,omitempty" json:"sourceLineage,omitempty"`
	CreatedAt                 time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt                 time.Time      `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Overlaps reports whether the interval overlaps [start, end) under
// half-open semantics.
func (iv *Interval) Overlaps(start, end time.Time) bool {
	return iv.Start.Before(end) && iv.End.After(start)
}

// Encompasses reports whether the interval fully contains [start, end).
func (iv *Interval) Encompasses(start, end time.Time) bool {
	return !iv.Start.After(start) && !iv.End.Before(end)
}

// RecurrencePattern returns the interval's pattern, defaulting to "none"
// when no recurrence is set.
func (iv *Interval) RecurrencePattern() string {
	if iv.Recurrence == nil || iv.Recurrence.Pattern == "" {
		return RecurrenceNone
	}
	return iv.Recurrence.Pattern
}
