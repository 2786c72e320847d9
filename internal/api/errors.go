package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSession indicates no bearer token is stored locally. Calls
	// fail fast with this before any network request.
	ErrNoSession = errors.New("not logged in (run: gigdesk login)")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("backend request timed out")

	// ErrBackendUnavailable indicates the backend is unreachable.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrNotFound indicates the requested resource does not exist.
	// Best-effort fetches (e.g. "any dispute yet?") treat this as a
	// normal empty state.
	ErrNotFound = errors.New("not found")
)

// APIError carries a server-reported failure: a non-2xx status, or a
// 2xx mutating response with success=false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// IsConflict reports whether err is a duplicate-resource rejection,
// detected by message substring since the backend does not send a
// structured code for it.
func IsConflict(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == 409 {
		return true
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "already exists")
}

// IsValidation reports whether err is a server-side validation
// rejection (4xx other than auth/not-found).
func IsValidation(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 &&
		apiErr.StatusCode != 401 && apiErr.StatusCode != 403 && apiErr.StatusCode != 404
}
