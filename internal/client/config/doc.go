// Package config loads runtime configuration for the authkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or --config.
//  3. Command-line flags that were set explicitly, which override earlier values.
//
// Supported flags
//
//	-a, --server string           base URL of the authentication service
//	-t, --timeout duration        HTTP request timeout
//	    --session-db string       SQLite file holding the saved session
//	    --log-level string        debug, info, warn or error
//	    --log-backend string      slog or zap
//	-i, --expiry-interval duration  token expiry check interval
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "request_timeout": "10s",
//	  "session_db": "session.db",
//	  "log_level": "info",
//	  "log_backend": "slog",
//	  "expiry_check_interval": "30s"
//	}
//
// This package does not read environment variables.
package config
