package api

import (
	"context"
	"errors"
	"fmt"
)

// APIError is a non-2xx response from the backend. Message carries the
// server-provided user-facing text when the body had one.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s: %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api %s: %d", e.Endpoint, e.StatusCode)
}

// UserMessage returns the server message, or fallback when the server sent
// none or the error was not an API response at all.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsCancelled reports whether the request was aborted by its caller. Aborts
// are not failures: the stores suppress them without touching state.
// A deadline expiry is a timeout and counts as an ordinary failure.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}
