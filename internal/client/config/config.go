package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/spf13/pflag"
)

// Config holds runtime settings for the authkeeper CLI.
//
// Fields:
//   - ServerURL: base URL of the authentication service.
//   - RequestTimeout: per-request HTTP timeout.
//   - SessionDB: path of the SQLite file that keeps the saved session.
//   - LogLevel, LogBackend: logger settings (see logging.New).
//   - ExpiryCheckInterval: how often the shell checks the token's exp claim.
type Config struct {
	ServerURL           string
	RequestTimeout      time.Duration
	SessionDB           string
	LogLevel            string
	LogBackend          string
	ExpiryCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.SessionDB = "session.db"
	c.LogLevel = "info"
	c.LogBackend = logging.BackendSlog
	c.ExpiryCheckInterval = 30 * time.Second
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.ServerURL == "" {
		errs = append(errs, errors.New("server url is empty"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.ExpiryCheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("expiry check interval must be positive, got %s", c.ExpiryCheckInterval))
	}
	if c.SessionDB == "" {
		errs = append(errs, errors.New("session db path is empty"))
	}
	switch strings.ToLower(c.LogBackend) {
	case logging.BackendSlog, logging.BackendZap:
	default:
		errs = append(errs, fmt.Errorf("unknown log backend %q", c.LogBackend))
	}
	return errors.Join(errs...)
}

// Load builds a Config from defaults, then the JSON file named by the
// --config flag (if any), then the flags in fs that were set explicitly.
// Later sources take precedence over earlier ones. fs must have been
// prepared with RegisterFlags and parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, err := fs.GetString(FlagConfig)
	if err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, path); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
