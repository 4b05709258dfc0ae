package mydal

import (
	"context"
	"database/sql"
)

// Querier abstracts the subset of *sql.DB the data access layer consumes.
// *sql.DB, *sql.Conn and *sql.Tx all satisfy it, so DAL functions run
// unchanged against the managed handle, a dedicated connection, or a
// transaction.
//
// Thread-Safety: follows the underlying implementation's guarantees.
type Querier interface {
	// ExecContext executes a statement without returning rows.
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)

	// QueryContext executes a statement that returns rows.
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)

	// QueryRowContext executes a statement expected to return at most one row.
	// Errors are deferred until Row's Scan method is called.
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Handle is one live database session as seen by the connection manager.
// It extends Querier with the lifecycle operations the manager needs:
// a lightweight liveness probe and an explicit close.
//
// A Handle is exclusively owned by its connection manager while open and
// becomes invalid after Close.
type Handle interface {
	Querier

	// PingContext verifies the session still answers the server.
	PingContext(ctx context.Context) error

	// Close terminates the session. The handle must not be used afterwards.
	Close() error
}

// Compile-time checks that database/sql handles satisfy the contracts.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Conn)(nil)
	_ Querier = (*sql.Tx)(nil)
	_ Handle  = (*sql.DB)(nil)
)
