package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mydal-project/mydal/internal/config"
	"github.com/mydal-project/mydal/internal/db"
	"github.com/mydal-project/mydal/internal/logging"
	"github.com/mydal-project/mydal/pkg/mydal"
)

// resolveConnection merges flags, environment, .env and mydal.yaml into a
// validated connection configuration and retry policy. When no password is
// available from any layer and stdin is a terminal, the user is prompted.
func resolveConnection(cmd *cobra.Command) (*mydal.ConnectionConfig, mydal.RetryPolicy, error) {
	envFile := rootFlags.envFile
	explicit := envFile != ""
	if envFile == "" {
		envFile = ".env"
	}
	if err := config.LoadEnvFile(envFile, explicit); err != nil {
		return nil, mydal.RetryPolicy{}, err
	}

	file, err := config.Load(".")
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, mydal.RetryPolicy{}, fmt.Errorf("%w: %s: %w", mydal.ErrInvalidConfig, config.ConfigFileName, err)
	}

	cfg, policy, err := config.Resolve(file, config.Overrides{
		Host:      rootFlags.host,
		Port:      rootFlags.port,
		Username:  rootFlags.username,
		Password:  rootFlags.password,
		Database:  rootFlags.database,
		Attempts:  rootFlags.attempts,
		BaseDelay: rootFlags.baseDelay,
	}, os.LookupEnv)
	if err != nil {
		return nil, mydal.RetryPolicy{}, err
	}

	if cfg.Password == "" && cfg.Username != "" && term.IsTerminal(int(os.Stdin.Fd())) {
		pw, err := promptPassword(cfg.Username)
		if err != nil {
			return nil, mydal.RetryPolicy{}, err
		}
		cfg.Password = pw
	}

	if err := cfg.Validate(); err != nil {
		return nil, mydal.RetryPolicy{}, err
	}

	return &cfg, policy, nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(username string) (string, error) {
	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}

// newClient builds a connection manager from the resolved configuration.
func newClient(cmd *cobra.Command) (*db.Client, error) {
	cfg, policy, err := resolveConnection(cmd)
	if err != nil {
		return nil, err
	}

	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	return db.NewClient(cfg,
		db.WithLogger(logger),
		db.WithRetryPolicy(policy),
	)
}

// withConnection runs fn against an acquired handle and releases it on every
// exit path.
func withConnection(cmd *cobra.Command, fn func(h mydal.Handle) error) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	return client.With(cmd.Context(), fn)
}
