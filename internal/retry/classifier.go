package retry

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers for transient conditions.
// See: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	// Server-side
	myCodeConCountError       = 1040 // ER_CON_COUNT_ERROR: too many connections
	myCodeBadHandshake        = 1043 // ER_HANDSHAKE_ERROR: can be transient under load
	myCodeServerShutdown      = 1053 // ER_SERVER_SHUTDOWN: server shutting down
	myCodeLockWaitTimeout     = 1205 // ER_LOCK_WAIT_TIMEOUT: retry the transaction
	myCodeLockDeadlock        = 1213 // ER_LOCK_DEADLOCK: retry the transaction
	myCodeReadOnlyMode        = 1290 // ER_OPTION_PREVENTS_STATEMENT: replica in read-only during failover
	myCodeConnRefused         = 2002 // CR_CONNECTION_ERROR
	myCodeConnHostError       = 2003 // CR_CONN_HOST_ERROR
	myCodeServerGone          = 2006 // CR_SERVER_GONE_ERROR
	myCodeServerLost          = 2013 // CR_SERVER_LOST

	// Fatal: credentials and target database problems are never retried
	myCodeDBAccessDenied   = 1044 // ER_DBACCESS_DENIED_ERROR
	myCodeAccessDenied     = 1045 // ER_ACCESS_DENIED_ERROR
	myCodeUnknownDatabase  = 1049 // ER_BAD_DB_ERROR
	myCodeHostNotPrivileged = 1130 // ER_HOST_NOT_PRIVILEGED
)

// MySQLErrorClassifier implements ErrorClassifier for MySQL-specific errors.
type MySQLErrorClassifier struct{}

// NewMySQLErrorClassifier creates a new MySQL error classifier.
func NewMySQLErrorClassifier() *MySQLErrorClassifier {
	return &MySQLErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *MySQLErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// The driver invalidates broken connections with these sentinels
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}

	// Check for MySQL-specific errors
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return c.isTransientMySQLError(myErr)
	}

	// Check for network-level errors
	if c.isNetworkError(err) {
		return true
	}

	// Check for connection errors by message
	if c.isConnectionError(err) {
		return true
	}

	return false
}

// isTransientMySQLError checks MySQL error numbers for transient conditions.
func (c *MySQLErrorClassifier) isTransientMySQLError(myErr *mysql.MySQLError) bool {
	switch myErr.Number {
	case myCodeDBAccessDenied,
		myCodeAccessDenied,
		myCodeUnknownDatabase,
		myCodeHostNotPrivileged:
		return false

	case myCodeConCountError,
		myCodeBadHandshake,
		myCodeServerShutdown,
		myCodeLockWaitTimeout,
		myCodeLockDeadlock,
		myCodeReadOnlyMode,
		myCodeConnRefused,
		myCodeConnHostError,
		myCodeServerGone,
		myCodeServerLost:
		return true
	}

	// SQL state class 08 covers connection exceptions
	if len(myErr.SQLState) >= 2 && myErr.SQLState[0] == '0' && myErr.SQLState[1] == '8' {
		return true
	}

	return false
}

// isNetworkError checks for network-level errors.
func (c *MySQLErrorClassifier) isNetworkError(err error) bool {
	// DNS errors
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() || dnsErr.Timeout()
	}

	// Network operation errors
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Temporary() || opErr.Timeout() {
			return true
		}

		if opErr.Err != nil {
			// Connection refused (server not ready)
			if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
				return true
			}

			// Connection reset by peer
			if errors.Is(opErr.Err, syscall.ECONNRESET) {
				return true
			}

			// Network unreachable
			if errors.Is(opErr.Err, syscall.ENETUNREACH) {
				return true
			}

			// Host unreachable
			if errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
				return true
			}
		}
	}

	return false
}

// isConnectionError checks for connection-related errors by message pattern.
// Last resort for errors the driver surfaces as plain strings.
func (c *MySQLErrorClassifier) isConnectionError(err error) bool {
	errMsg := strings.ToLower(err.Error())

	transientPatterns := []string{
		"connection refused",
		"connection reset",
		"connection timeout",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"broken pipe",
		"too many connections",
		"server shutdown in progress",
		"invalid connection",
		"bad connection",
		"unexpected eof",
	}

	for _, pattern := range transientPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}
