package models

import "time"

// CreateAvailabilityRequest defines the payload for publishing availability.
type CreateAvailabilityRequest struct {
	Start                     time.Time  `json:"start" binding:"required"`
	End                       time.Time  `json:"end" binding:"required"`
	Title                     string     `json:"title"`
	RecurrencePattern         string     `json:"recurrencePattern"`
	RecurrenceEndDate         *time.Time `json:"recurrenceEndDate"`
	InstantBookingEnabled     bool       `json:"instantBookingEnabled"`
	FirmBookingThresholdHours float64    `json:"firmBookingThresholdHours"`
}

// RequestBookingPayload defines the payload for requesting a session.
type RequestBookingPayload struct {
	CoachID string    `json:"coachId" binding:"required"`
	Start   time.Time `json:"start" binding:"required"`
	End     time.Time `json:"end" binding:"required"`
	Notes   string    `json:"notes"`
}

// ReschedulePayload defines the payload for moving a booking.
type ReschedulePayload struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// CompletionPayload is the asynq task payload for the booking completion sweep.
type CompletionPayload struct {
	BookingID string `json:"bookingId"`
}
