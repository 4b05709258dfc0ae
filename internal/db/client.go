package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mydal-project/mydal/internal/logging"
	"github.com/mydal-project/mydal/internal/retry"
	"github.com/mydal-project/mydal/pkg/mydal"
)

// connMaxIdleTime keeps the managed session alive between demo commands
// without the server reaping it mid-flow.
const connMaxIdleTime = 30 * time.Minute

// Opener establishes one database session from a DSN.
// The default opener dials MySQL through database/sql; tests inject fakes.
type Opener func(ctx context.Context, dsn string) (mydal.Handle, error)

// Client is the connection manager. It owns at most one live handle,
// acquires it lazily with retry on transient connectivity failures, and
// reports liveness.
//
// Construct it explicitly and pass it where needed; there is no package-level
// instance. Not safe for concurrent use.
type Client struct {
	config     *mydal.ConnectionConfig
	policy     mydal.RetryPolicy
	logger     mydal.Logger
	classifier mydal.ErrorClassifier
	executor   *retry.Executor
	open       Opener

	handle mydal.Handle
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithLogger sets the logger used for connection diagnostics.
func WithLogger(logger mydal.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(policy mydal.RetryPolicy) Option {
	return func(c *Client) {
		c.policy = policy
	}
}

// WithOpener overrides how sessions are established. Used by tests.
func WithOpener(open Opener) Option {
	return func(c *Client) {
		c.open = open
	}
}

// NewClient creates a connection manager for the given configuration.
// The configuration is validated up front; invalid configuration fails
// immediately with ErrInvalidConfig and no connection attempt is made.
func NewClient(config *mydal.ConnectionConfig, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("nil connection config: %w", mydal.ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: config,
		policy: mydal.DefaultRetryPolicy(),
		logger: logging.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.policy.Attempts < 1 {
		return nil, fmt.Errorf("retry attempts must be >= 1, got %d: %w",
			c.policy.Attempts, mydal.ErrInvalidConfig)
	}
	if c.policy.BaseDelay < 0 {
		return nil, fmt.Errorf("retry base delay cannot be negative: %w", mydal.ErrInvalidConfig)
	}

	// The schedule between attempt i and i+1 is exactly BaseDelay * 2^i.
	c.classifier = retry.NewMySQLErrorClassifier()
	strategy := retry.NewExponentialBackoff(c.policy.Attempts-1,
		retry.WithInitialDelay(c.policy.BaseDelay),
		retry.WithMaxDelay(mydal.DefaultRetryMaxDelay),
		retry.WithJitter(0),
	)
	c.executor = retry.NewExecutor(c.classifier, strategy)

	if c.open == nil {
		c.open = sqlOpener
	}

	return c, nil
}

// Get returns the held handle if it is open and live, otherwise it opens a
// new one, retrying transient connectivity failures per the retry policy.
// Calling Get twice without an intervening Close returns the same handle.
func (c *Client) Get(ctx context.Context) (mydal.Handle, error) {
	if c.handle != nil {
		if err := c.handle.PingContext(ctx); err == nil {
			return c.handle, nil
		}
		c.logger.Verbose("held connection failed liveness probe, reconnecting")
		c.handle.Close() //nolint:errcheck
		c.handle = nil
	}

	return c.connect(ctx)
}

// Live reports whether the held handle currently answers a liveness probe.
// Returns false without dialing when no handle is held.
func (c *Client) Live(ctx context.Context) bool {
	if c.handle == nil {
		return false
	}
	return c.handle.PingContext(ctx) == nil
}

// Close closes the held handle if open. Idempotent: closing an already
// closed client is a no-op.
func (c *Client) Close() error {
	if c.handle == nil {
		return nil
	}

	err := c.handle.Close()
	c.handle = nil
	if err != nil {
		return fmt.Errorf("closing connection: %w", err)
	}

	c.logger.Verbose("database connection closed")
	return nil
}

// With acquires a handle, runs fn with it, and releases the handle on every
// exit path, including panics inside fn.
func (c *Client) With(ctx context.Context, fn func(h mydal.Handle) error) (err error) {
	h, err := c.Get(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(h)
}

// Config returns the connection configuration for diagnostics.
func (c *Client) Config() *mydal.ConnectionConfig {
	return c.config
}

// connect opens a new session with retry. On failure no partial handle is
// retained.
func (c *Client) connect(ctx context.Context) (mydal.Handle, error) {
	dsn := BuildDSN(c.config)

	var (
		handle   mydal.Handle
		attempts int
	)

	executor := c.executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		c.logger.Verbose("connection attempt %d/%d failed: %v; retrying in %s",
			attempt+1, c.policy.Attempts, err, delay)
	})

	err := executor.Execute(ctx, func(ctx context.Context) error {
		attempts++
		h, err := c.open(ctx, dsn)
		if err != nil {
			return err
		}
		handle = h
		return nil
	})

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		if c.classifier.IsTransient(err) {
			// All attempts failed with connectivity errors
			return nil, fmt.Errorf("%w: %s/%s unreachable after %d attempt(s): %w",
				mydal.ErrConnectionFailed, c.config.Addr(), c.config.Database, attempts, err)
		}
		return nil, wrapFatalError(err, c.config)
	}

	c.logger.Info("connected to database %q on %s", c.config.Database, c.config.Addr())
	c.handle = handle
	return handle, nil
}

// sqlOpener dials MySQL through database/sql and verifies the session with
// an initial ping before handing it over.
func sqlOpener(ctx context.Context, dsn string) (mydal.Handle, error) {
	handle, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed DSN: %w", mydal.ErrInvalidConfig, err)
	}

	// Pin the pool to a single session: the manager owns exactly one connection.
	handle.SetMaxOpenConns(1)
	handle.SetMaxIdleConns(1)
	handle.SetConnMaxIdleTime(connMaxIdleTime)

	if err := handle.PingContext(ctx); err != nil {
		handle.Close() //nolint:errcheck
		return nil, err
	}

	return handle, nil
}
