package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the Capacinator server is unreachable.
	ErrUnavailable = errors.New("capacinator server unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("api request timed out")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the server rejected the API token.
	ErrUnauthorized = errors.New("unauthorized (check CAPACINATOR_TOKEN)")

	// ErrMergeConflicted indicates the server refused to execute a merge
	// because conflicts remain unresolved.
	ErrMergeConflicted = errors.New("merge rejected: conflicts remain unresolved")
)

// StatusError carries a non-2xx server response. The server's error body
// ({"error": "..."}) is surfaced as Message when present.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Code)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrMergeConflicted):
		return "MERGE_CONFLICTED"
	default:
		var se *StatusError
		if errors.As(err, &se) {
			return fmt.Sprintf("HTTP_%d", se.Code)
		}
		return "UNKNOWN"
	}
}
