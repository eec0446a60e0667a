package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTaskType is returned when a message names a task type with no handler
	ErrUnknownTaskType = errors.New("unknown task type")

	// ErrSumOverflow is returned when a sum does not fit in an int64
	ErrSumOverflow = errors.New("sum overflows int64")
)

// ParseError reports a sum_numbers segment that is not a base-10 integer
type ParseError struct {
	Segment string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid integer %q: %v", e.Segment, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
