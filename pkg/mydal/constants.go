package mydal

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Command completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or rejected credentials
	ExitConnectionError = 11 // Failed to connect to database
	ExitNotFound        = 12 // Requested row does not exist
	ExitQueryFailed     = 13 // SQL statement rejected by the server
)

const (
	// DefaultRetryAttempts is the default total number of connection attempts.
	DefaultRetryAttempts = 3

	// DefaultRetryBaseDelay is the default delay before the first retry.
	// Subsequent delays double per attempt.
	DefaultRetryBaseDelay = 2 * time.Second

	// DefaultRetryMaxDelay caps the delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultPort is the standard MySQL server port.
	DefaultPort = 3306

	// DefaultDialTimeout bounds a single connection attempt.
	DefaultDialTimeout = 10 * time.Second
)
