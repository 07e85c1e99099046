package llm

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for completion calls.
var (
	// ErrCLINotFound indicates the CLI binary was not found in PATH.
	ErrCLINotFound = errors.New("claude CLI not found")

	// ErrUnavailable indicates the model service is unavailable.
	ErrUnavailable = errors.New("model service unavailable")

	// ErrTimeout indicates the request timed out.
	ErrTimeout = errors.New("request timed out")
)

// Error wraps completion errors with context.
type Error struct {
	Op        string // Operation that failed ("complete")
	Err       error  // Underlying error
	Retryable bool   // Whether the error is likely transient
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("llm %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new completion error.
func NewError(op string, err error, retryable bool) *Error {
	return &Error{Op: op, Err: err, Retryable: retryable}
}

// isRetryableMessage checks if an error message indicates a transient failure.
func isRetryableMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "overloaded") ||
		strings.Contains(lower, "503") ||
		strings.Contains(lower, "529")
}
