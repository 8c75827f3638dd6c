// Package errors provides custom error types and exit codes for plfetch.
package errors

import (
	"fmt"
)

// FetchError is a custom error type that provides context about operations.
type FetchError struct {
	Op   string // Operation being performed (e.g., "fetch", "write snapshot")
	Path string // URL or file path involved
	Err  error  // Underlying error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Predefined errors for common scenarios.
var (
	ErrHTTPStatus    = fmt.Errorf("unexpected HTTP status")
	ErrEmptyBody     = fmt.Errorf("response body is empty")
	ErrInvalidUTF8   = fmt.Errorf("response body is not valid UTF-8")
	ErrInvalidJSON   = fmt.Errorf("response body is not valid JSON")
	ErrStoreNotFound = fmt.Errorf("snapshot directory not found")
)

// Exit codes - use these constants in CLI commands instead of hardcoding values.
const (
	ExitSuccess      = 0 // Success
	ExitGeneralError = 1 // General error (file I/O, permissions)
	ExitConfigError  = 2 // Configuration error (invalid config, missing values)
	ExitDataError    = 3 // Data error (snapshot file unreadable or not JSON)
	ExitNetworkError = 4 // Network error (failed to fetch an endpoint)
)
