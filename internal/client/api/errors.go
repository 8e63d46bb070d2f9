package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no active session; no request was issued.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrUnavailable means the server could not be reached or answered 5xx.
	ErrUnavailable = errors.New("service unavailable")

	// ErrUnauthorized means the server rejected the request (401/403).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation means the request was malformed or refused (other 4xx),
	// or failed a local pre-flight check.
	ErrValidation = errors.New("validation error")
)

// StatusError carries the HTTP status and the server-supplied detail message
// for a failed request. It unwraps to one of the sentinel errors above, so
// callers can match with errors.Is and still show the server's message.
type StatusError struct {
	Status int
	Detail string
	kind   error
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d): %s", e.kind.Error(), e.Status, e.Detail)
	}
	return fmt.Sprintf("%s (%d)", e.kind.Error(), e.Status)
}

func (e *StatusError) Unwrap() error { return e.kind }
