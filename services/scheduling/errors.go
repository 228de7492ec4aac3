package scheduling

import (
	"errors"
	"fmt"
	"time"
)

// InvalidRangeError signals a caller bug: a proposed range with end <= start.
// Never retried.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalidRange: end %s is not after start %s", e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}

// PreconditionError signals that the interval assumed by an occupy call does
// not exist or does not encompass the requested range (stale read). The
// caller must re-run the bookability check and retry the whole sequence.
type PreconditionError struct {
	IntervalID string
	Message    string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition: interval %s: %s", e.IntervalID, e.Message)
}

// ConflictRetryableError signals that the store aborted the transaction due
// to concurrent modification. The caller should retry the full
// check-and-mutate sequence with bounded backoff.
type ConflictRetryableError struct {
	Err error
}

func (e *ConflictRetryableError) Error() string {
	return fmt.Sprintf("conflictRetryable: %v", e.Err)
}

func (e *ConflictRetryableError) Unwrap() error { return e.Err }

// StoreUnavailableError signals that the persistence collaborator failed
// (timeout, connection loss). Propagated to the caller without retry here.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("storeUnavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// IsConflictRetryable reports whether err should trigger a full-sequence retry.
func IsConflictRetryable(err error) bool {
	var cr *ConflictRetryableError
	return errors.As(err, &cr)
}

// IsPreconditionFailure reports whether err is a stale-read precondition failure.
func IsPreconditionFailure(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
