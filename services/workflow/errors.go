package workflow

import "fmt"

// BookingError is a user-facing booking failure.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrSlotNotBookable is returned when the requested range conflicts with an
// existing booking or is not fully covered by availability.
func ErrSlotNotBookable() error {
	return &BookingError{
		Code:    "slotNotBookable",
		Message: "the requested time is not available",
	}
}

// ErrBookingUnavailable is returned after the check-and-book sequence kept
// losing transaction conflicts for the allowed number of retries.
func ErrBookingUnavailable() error {
	return &BookingError{
		Code:    "bookingUnavailable",
		Message: "the slot could not be booked due to concurrent activity, please try again",
	}
}

// ErrBookingNotFound is returned when no booking exists for the given ID.
func ErrBookingNotFound(id string) error {
	return &BookingError{
		Code:    "bookingNotFound",
		Message: fmt.Sprintf("no booking found with id %s", id),
	}
}
