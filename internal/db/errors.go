package db

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/mydal-project/mydal/pkg/mydal"
)

// Server error numbers that make an acquisition failure fatal.
// See: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	errDBAccessDenied    = 1044 // ER_DBACCESS_DENIED_ERROR
	errAccessDenied      = 1045 // ER_ACCESS_DENIED_ERROR
	errUnknownDatabase   = 1049 // ER_BAD_DB_ERROR
	errHostNotPrivileged = 1130 // ER_HOST_NOT_PRIVILEGED
)

// wrapFatalError maps fatal driver errors onto the mydal sentinel taxonomy
// with enough context to act on. Non-fatal, unrecognized errors pass through
// unchanged.
func wrapFatalError(err error, config *mydal.ConnectionConfig) error {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return err
	}

	switch myErr.Number {
	case errAccessDenied, errDBAccessDenied, errHostNotPrivileged:
		return fmt.Errorf("%w for user %q on %s: %w",
			mydal.ErrAccessDenied, config.Username, config.Addr(), err)
	case errUnknownDatabase:
		return fmt.Errorf("%w: %q does not exist on %s: %w",
			mydal.ErrUnknownDatabase, config.Database, config.Addr(), err)
	}

	return err
}
