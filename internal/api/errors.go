package api

import (
	"errors"
	"fmt"
)

// Outcome sentinels for classified upstream responses.
var (
	// ErrUnauthorized means the session is invalid (401/403). It is
	// never retried automatically.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the referenced entity does not exist (404).
	ErrNotFound = errors.New("not found")

	// ErrConflict means the resource already exists (409).
	ErrConflict = errors.New("conflict")
)

// ServerError covers 5xx responses, unexpected status codes, transport
// failures and malformed response bodies. Status is zero when the failure
// happened before a status code was received.
type ServerError struct {
	Status int
	Err    error
}

func (e *ServerError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("upstream returned %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("upstream returned %d", e.Status)
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

// FailureKind names the outcome kind for an error produced by this
// package, for use in view-model failure markers.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "server_error"
	}
}
