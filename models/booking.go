package models

import "time"

// SlotSnapshot captures the attributes of the availability interval a
// booking was carved out of, so they can be restored when the booking is
// cancelled and its time is coalesced back into availability.
type SlotSnapshot struct {
	IntervalID                string      `bson:"intervalId" json:"intervalId"`
	Title                     string      `bson:"title,omitempty" json:"title,omitempty"`
	Recurrence                *Recurrence `bson:"recurrence,omitempty" json:"recurrence,omitempty"`
	InstantBookingEnabled     bool        `bson:"instantBookingEnabled" json:"instantBookingEnabled"`
	FirmBookingThresholdHours float64     `bson:"firmBookingThresholdHours,omitempty" json:"firmBookingThresholdHours,omitempty"`
}

// Booking represents a session booked against a coach's availability.
type Booking struct {
	ID           string        `bson:"id" json:"id"`
	CoachID      string        `bson:"coachId" json:"coachId"`
	ClientID     string        `bson:"clientId" json:"clientId"`
	Start        time.Time     `bson:"start" json:"start"`
	End          time.Time     `bson:"end" json:"end"`
	Status       string        `bson:"status" json:"status"`
	Notes        string        `bson:"notes,omitempty" json:"notes,omitempty"`
	SlotSnapshot *SlotSnapshot `bson:"slotSnapshot,omitempty" json:"slotSnapshot,omitempty"`
	RestoredAt   *time.Time    `bson:"restoredAt,omitempty" json:"restoredAt,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// IsActive reports whether the booking still occupies its time range.
func (b *Booking) IsActive() bool {
	return IsActiveStatus(b.Status)
}
