package helpers

import (
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type DashboardError struct {
	Message string
	Cause   error
}

func (e *DashboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DashboardError) Unwrap() error {
	return e.Cause
}

// One type per response class: not found -> 404, validation -> 400,
// upstream and database -> 500.
type NotFoundError struct{ DashboardError }
type ValidationError struct{ DashboardError }
type UpstreamError struct{ DashboardError }
type DatabaseError struct{ DashboardError }

// -----------------------------------------------------------------------------

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{DashboardError{Message: message}}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{DashboardError{Message: message}}
}

func NewUpstreamError(message string, cause error) *UpstreamError {
	return &UpstreamError{DashboardError{Message: message, Cause: cause}}
}

func NewDatabaseError(message string, cause error) *DatabaseError {
	return &DatabaseError{DashboardError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// SleepFunc lets tests observe and skip the retry delays.
type SleepFunc func(time.Duration)

// RetryWithLinearBackoff runs fn up to maxRetries times, sleeping
// base + step*attempt between failures (attempt counted from 0). The delay
// after the final attempt is skipped; the last error is returned unwrapped
// so the caller sees exactly what the provider reported.
func RetryWithLinearBackoff(maxRetries int, base, step time.Duration, sleep SleepFunc, fn func() error) error {
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}

		if attempt < maxRetries-1 {
			sleep(base + step*time.Duration(attempt))
		}
	}

	return lastErr
}
