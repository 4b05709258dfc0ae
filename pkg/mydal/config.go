package mydal

import (
	"errors"
	"fmt"
	"time"
)

// ConnectionConfig contains all parameters needed to reach a MySQL server.
// Immutable once constructed; build it through internal/config resolution
// or populate it directly in tests.
type ConnectionConfig struct {
	// Host is the server hostname or IP address
	Host string

	// Port is the server TCP port (DefaultPort when zero)
	Port int

	// Username authenticates the session
	Username string

	// Password authenticates the session (may be empty for local setups)
	Password string

	// Database is the schema to use after connecting
	Database string

	// Params are additional driver parameters appended to the DSN
	// (e.g. "charset": "utf8mb4"). parseTime is always forced on.
	Params map[string]string

	// DialTimeout bounds a single connection attempt (DefaultDialTimeout when zero)
	DialTimeout time.Duration
}

// Validate checks if the ConnectionConfig has all required fields and valid values.
// It returns a joined error if multiple validation failures occur.
// Every failure wraps ErrInvalidConfig.
func (c *ConnectionConfig) Validate() error {
	var errs []error

	if c.Host == "" {
		errs = append(errs, fmt.Errorf("host is required: %w", ErrInvalidConfig))
	}

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range: %w", c.Port, ErrInvalidConfig))
	}

	if c.Username == "" {
		errs = append(errs, fmt.Errorf("username is required: %w", ErrInvalidConfig))
	}

	if c.Database == "" {
		errs = append(errs, fmt.Errorf("database is required: %w", ErrInvalidConfig))
	}

	if c.DialTimeout < 0 {
		errs = append(errs, fmt.Errorf("dial timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// Addr returns the host:port pair used in error messages and the DSN.
func (c *ConnectionConfig) Addr() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("%s:%d", c.Host, port)
}
