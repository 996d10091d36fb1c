package stepz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Driver failure sentinels.
var (
	ErrStepLimit     = errors.New("step limit exceeded")
	ErrDeadline      = errors.New("driver deadline exceeded")
	ErrInvalidConfig = errors.New("invalid config")
)

// Error provides rich context about an interrupted run.
// It wraps the underlying cause with the driver path, how far the process got and,
// when the process is still in a valid state, the unconsumed remainder.
//
// Remaining is nil when the interruption happened inside Step itself (a panic in the
// process), since no valid continuation exists then. Otherwise it is the process
// exactly as it was before the step that did not happen, or after the output that
// the callback rejected, and can be handed to Run again to resume.
type Error[O, T any] struct {
	Remaining Process[O, T]
	Timestamp time.Time
	Err       error
	Path      []Name
	Duration  time.Duration
	Steps     int
	Timeout   bool
	Canceled  bool
}

// Error implements the error interface, providing a detailed error message.
func (e *Error[O, T]) Error() string {
	location := strings.Join(e.Path, " -> ")

	if e.Timeout {
		return fmt.Sprintf("%s timed out after %v (%d steps): %v", location, e.Duration, e.Steps, e.Err)
	}
	if e.Canceled {
		return fmt.Sprintf("%s canceled after %v (%d steps): %v", location, e.Duration, e.Steps, e.Err)
	}
	return fmt.Sprintf("%s interrupted after %v (%d steps): %v", location, e.Duration, e.Steps, e.Err)
}

// Unwrap returns the underlying error, supporting error wrapping patterns.
func (e *Error[O, T]) Unwrap() error {
	return e.Err
}

// IsTimeout returns true if the run was stopped by a deadline.
func (e *Error[O, T]) IsTimeout() bool {
	return e.Timeout || errors.Is(e.Err, context.DeadlineExceeded) || errors.Is(e.Err, ErrDeadline)
}

// IsCanceled returns true if the run was stopped by context cancellation.
func (e *Error[O, T]) IsCanceled() bool {
	return e.Canceled || errors.Is(e.Err, context.Canceled)
}

// Resumable reports whether Remaining holds a valid continuation.
func (e *Error[O, T]) Resumable() bool {
	return e.Remaining != nil
}

// panicError carries a recovered panic with a sanitized message.
type panicError struct {
	value     any
	sanitized string
}

func (p *panicError) Error() string {
	return p.sanitized
}

// newPanicError keeps the panic value for errors.As callers but reports only its
// type and a bounded message.
func newPanicError(v any) *panicError {
	msg := fmt.Sprintf("%v", v)
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return &panicError{value: v, sanitized: "panic occurred: " + msg}
}

// Unwrap exposes an error panic value.
func (p *panicError) Unwrap() error {
	if err, ok := p.value.(error); ok {
		return err
	}
	return nil
}
