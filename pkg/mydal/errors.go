package mydal

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := client.Get(ctx)
//	if errors.Is(err, mydal.ErrConnectionFailed) {
//	    // Handle unreachable database
//	}
var (
	// ErrInvalidConfig indicates the provided connection configuration is invalid.
	// Raised before any connection attempt is made.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the database could not be reached after
	// exhausting all retry attempts.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrAccessDenied indicates the server rejected the credentials.
	// Never retried.
	ErrAccessDenied = errors.New("access denied")

	// ErrUnknownDatabase indicates the target database does not exist on the server.
	// Never retried.
	ErrUnknownDatabase = errors.New("unknown database")

	// ErrNotFound indicates a lookup matched no rows, or an update/delete
	// affected no rows.
	ErrNotFound = errors.New("not found")

	// ErrQueryFailed indicates a statement was rejected by the server.
	// Query-level failures propagate unchanged and are never retried.
	ErrQueryFailed = errors.New("query failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrAccessDenied), errors.Is(err, ErrUnknownDatabase):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrQueryFailed):
		return ExitQueryFailed
	}

	errStr := err.Error()

	// Cobra reports flag and argument misuse as plain errors
	if strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "unknown command") ||
		strings.HasPrefix(errStr, "invalid argument") ||
		strings.HasPrefix(errStr, "required flag") ||
		strings.Contains(errStr, "arg(s), received") {
		return ExitUsageError
	}

	// Check for common connection error patterns from the driver
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
