package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mydal-project/mydal/pkg/mydal"
)

func noEnv(string) (string, bool) { return "", false }

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `connection:
  host: db.example.com
  port: 3307
  username: appuser
  database: classicmodels
  params:
    charset: utf8mb4

retry:
  attempts: 5
  base_delay: 500ms
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "db.example.com", cfg.Connection.Host)
	assert.Equal(t, 3307, cfg.Connection.Port)
	assert.Equal(t, "appuser", cfg.Connection.Username)
	assert.Equal(t, "classicmodels", cfg.Connection.Database)
	assert.Equal(t, "utf8mb4", cfg.Connection.Params["charset"])
	assert.Equal(t, 5, cfg.Retry.Attempts)
	assert.Equal(t, "500ms", cfg.Retry.BaseDelay)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestResolve_Defaults(t *testing.T) {
	cfg, policy, err := Resolve(nil, Overrides{}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, mydal.DefaultPort, cfg.Port)
	assert.Equal(t, mydal.DefaultRetryAttempts, policy.Attempts)
	assert.Equal(t, mydal.DefaultRetryBaseDelay, policy.BaseDelay)
}

func TestResolve_FileLayer(t *testing.T) {
	file := &ProjectConfig{
		Connection: ConnectionSection{Host: "filehost", Username: "fileuser", Database: "filedb"},
		Retry:      RetrySection{Attempts: 7, BaseDelay: "250ms"},
	}

	cfg, policy, err := Resolve(file, Overrides{}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "filehost", cfg.Host)
	assert.Equal(t, "fileuser", cfg.Username)
	assert.Equal(t, "filedb", cfg.Database)
	assert.Equal(t, mydal.DefaultPort, cfg.Port)
	assert.Equal(t, 7, policy.Attempts)
	assert.Equal(t, 250*time.Millisecond, policy.BaseDelay)
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	file := &ProjectConfig{
		Connection: ConnectionSection{Host: "filehost", Port: 3307},
	}
	env := envOf(map[string]string{
		EnvHost:     "envhost",
		EnvPassword: "secret",
	})

	cfg, _, err := Resolve(file, Overrides{}, env)
	require.NoError(t, err)

	assert.Equal(t, "envhost", cfg.Host)
	assert.Equal(t, 3307, cfg.Port, "port from file survives when env does not set it")
	assert.Equal(t, "secret", cfg.Password)
}

func TestResolve_FlagsWin(t *testing.T) {
	file := &ProjectConfig{Connection: ConnectionSection{Host: "filehost"}}
	env := envOf(map[string]string{EnvHost: "envhost", EnvUser: "envuser"})

	cfg, policy, err := Resolve(file, Overrides{
		Host:      "flaghost",
		Attempts:  2,
		BaseDelay: time.Second,
	}, env)
	require.NoError(t, err)

	assert.Equal(t, "flaghost", cfg.Host)
	assert.Equal(t, "envuser", cfg.Username, "env fills fields the flags leave alone")
	assert.Equal(t, 2, policy.Attempts)
	assert.Equal(t, time.Second, policy.BaseDelay)
}

func TestResolve_BadPortEnv(t *testing.T) {
	_, _, err := Resolve(nil, Overrides{}, envOf(map[string]string{EnvPort: "lots"}))
	assert.ErrorIs(t, err, mydal.ErrInvalidConfig)
}

func TestResolve_BadBaseDelay(t *testing.T) {
	file := &ProjectConfig{Retry: RetrySection{BaseDelay: "soon"}}
	_, _, err := Resolve(file, Overrides{}, noEnv)
	assert.ErrorIs(t, err, mydal.ErrInvalidConfig)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_HOST=dotenvhost\n"), 0644))

	t.Setenv(EnvHost, "")
	os.Unsetenv(EnvHost)

	require.NoError(t, LoadEnvFile(path, false))
	assert.Equal(t, "dotenvhost", os.Getenv(EnvHost))

	// Missing default file is fine, missing explicit file is not
	assert.NoError(t, LoadEnvFile(filepath.Join(dir, "nope.env"), false))
	assert.Error(t, LoadEnvFile(filepath.Join(dir, "nope.env"), true))
}
