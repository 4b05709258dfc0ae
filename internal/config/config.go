// Package config resolves connection settings from flags, environment
// variables, .env files and the optional mydal.yaml project file.
//
// Precedence, highest first: command-line flags, process environment,
// .env file, mydal.yaml. The .env file is loaded into the process
// environment without overriding variables that are already set, which
// gives the middle two layers their ordering for free.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mydal-project/mydal/pkg/mydal"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variable names understood by Resolve.
const (
	EnvHost     = "DB_HOST"
	EnvPort     = "DB_PORT"
	EnvUser     = "DB_USER"
	EnvPassword = "DB_PASSWORD"
	EnvDatabase = "DB_NAME"
)

type ConnectionSection struct {
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Database string            `yaml:"database"`
	Params   map[string]string `yaml:"params,omitempty"`
}

type RetrySection struct {
	Attempts  int    `yaml:"attempts"`
	BaseDelay string `yaml:"base_delay"`
}

// ProjectConfig is the shape of mydal.yaml. Passwords deliberately have
// no place here; they come from the environment or the prompt.
type ProjectConfig struct {
	Connection ConnectionSection `yaml:"connection"`
	Retry      RetrySection      `yaml:"retry"`
}

const ConfigFileName = "mydal.yaml"

// Load reads mydal.yaml from dir. Returns ErrConfigNotFound when the
// file does not exist.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnvFile loads a dotenv file into the process environment without
// overriding variables that are already set. A missing file is only an
// error when the caller named it explicitly.
func LoadEnvFile(path string, explicit bool) error {
	err := godotenv.Load(path)
	if err != nil && os.IsNotExist(err) && !explicit {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: env file %s: %w", mydal.ErrInvalidConfig, path, err)
	}
	return nil
}

// Overrides carries flag values. A zero value means the flag was not
// given and the next layer down decides.
type Overrides struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	Attempts  int
	BaseDelay time.Duration
}

// Resolve merges the configuration layers into a ConnectionConfig and a
// RetryPolicy. lookup abstracts os.LookupEnv for tests.
func Resolve(file *ProjectConfig, flags Overrides, lookup func(string) (string, bool)) (mydal.ConnectionConfig, mydal.RetryPolicy, error) {
	cfg := mydal.ConnectionConfig{Port: mydal.DefaultPort}
	policy := mydal.DefaultRetryPolicy()

	if file != nil {
		if file.Connection.Host != "" {
			cfg.Host = file.Connection.Host
		}
		if file.Connection.Port != 0 {
			cfg.Port = file.Connection.Port
		}
		if file.Connection.Username != "" {
			cfg.Username = file.Connection.Username
		}
		if file.Connection.Database != "" {
			cfg.Database = file.Connection.Database
		}
		if len(file.Connection.Params) > 0 {
			cfg.Params = file.Connection.Params
		}
		if file.Retry.Attempts != 0 {
			policy.Attempts = file.Retry.Attempts
		}
		if file.Retry.BaseDelay != "" {
			d, err := time.ParseDuration(file.Retry.BaseDelay)
			if err != nil {
				return mydal.ConnectionConfig{}, mydal.RetryPolicy{},
					fmt.Errorf("%w: retry.base_delay %q: %w", mydal.ErrInvalidConfig, file.Retry.BaseDelay, err)
			}
			policy.BaseDelay = d
		}
	}

	if v, ok := lookup(EnvHost); ok {
		cfg.Host = v
	}
	if v, ok := lookup(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return mydal.ConnectionConfig{}, mydal.RetryPolicy{},
				fmt.Errorf("%w: %s %q is not a port number", mydal.ErrInvalidConfig, EnvPort, v)
		}
		cfg.Port = port
	}
	if v, ok := lookup(EnvUser); ok {
		cfg.Username = v
	}
	if v, ok := lookup(EnvPassword); ok {
		cfg.Password = v
	}
	if v, ok := lookup(EnvDatabase); ok {
		cfg.Database = v
	}

	if flags.Host != "" {
		cfg.Host = flags.Host
	}
	if flags.Port != 0 {
		cfg.Port = flags.Port
	}
	if flags.Username != "" {
		cfg.Username = flags.Username
	}
	if flags.Password != "" {
		cfg.Password = flags.Password
	}
	if flags.Database != "" {
		cfg.Database = flags.Database
	}
	if flags.Attempts != 0 {
		policy.Attempts = flags.Attempts
	}
	if flags.BaseDelay != 0 {
		policy.BaseDelay = flags.BaseDelay
	}

	return cfg, policy, nil
}
