package availability

import "fmt"

// SlotError is a coach-facing availability management failure.
type SlotError struct {
	Code    string
	Message string
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSlotError(code, msg string) error {
	return &SlotError{Code: code, Message: msg}
}
