package config

import (
	"github.com/spf13/pflag"
)

// Flag names understood by RegisterFlags and Load.
const (
	FlagConfig         = "config"
	FlagServer         = "server"
	FlagTimeout        = "timeout"
	FlagSessionDB      = "session-db"
	FlagLogLevel       = "log-level"
	FlagLogBackend     = "log-backend"
	FlagExpiryInterval = "expiry-interval"
)

// RegisterFlags defines the configuration flags on fs. Defaults shown in
// help output come from LoadDefaults; only flags the user actually sets
// override the JSON file.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON config file")
	fs.StringP(FlagServer, "a", d.ServerURL, "base URL of the authentication service")
	fs.DurationP(FlagTimeout, "t", d.RequestTimeout, "HTTP request timeout")
	fs.String(FlagSessionDB, d.SessionDB, "path of the local session database")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.String(FlagLogBackend, d.LogBackend, "log backend: slog or zap")
	fs.DurationP(FlagExpiryInterval, "i", d.ExpiryCheckInterval, "token expiry check interval")
}

// applyFlags copies explicitly set flags into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagServer:
			cfg.ServerURL, err = fs.GetString(f.Name)
		case FlagTimeout:
			cfg.RequestTimeout, err = fs.GetDuration(f.Name)
		case FlagSessionDB:
			cfg.SessionDB, err = fs.GetString(f.Name)
		case FlagLogLevel:
			cfg.LogLevel, err = fs.GetString(f.Name)
		case FlagLogBackend:
			cfg.LogBackend, err = fs.GetString(f.Name)
		case FlagExpiryInterval:
			cfg.ExpiryCheckInterval, err = fs.GetDuration(f.Name)
		}
	})
	return err
}
