package tribridrag

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig is returned when the client configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrBackendUnavailable is returned when the backend cannot be reached
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrBadResponse is returned when the backend returns a malformed body
	ErrBadResponse = errors.New("malformed backend response")

	// ErrUnauthorized is returned when the backend rejects the API key
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the backend has no such resource
	ErrNotFound = errors.New("not found")
)

// APIError represents a failed backend call with additional context.
type APIError struct {
	Op     string // Operation that failed, e.g. "query"
	Status int    // HTTP status code, 0 if the request never completed
	Err    error  // Underlying error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("tribridrag: %s (status=%d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("tribridrag: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Err
}
