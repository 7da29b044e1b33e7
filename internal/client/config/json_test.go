package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	dir := t.TempDir()

	t.Run("all fields", func(t *testing.T) {
		path := writeTempJSON(t, dir, "full.json", map[string]any{
			"server_url":            "https://auth.example",
			"request_timeout":       "5s",
			"session_db":            "s.db",
			"log_level":             "warn",
			"log_backend":           "zap",
			"expiry_check_interval": float64(2 * time.Second),
		})

		cfg := &Config{}
		require.NoError(t, parseJSON(cfg, path))

		want := &Config{
			ServerURL:           "https://auth.example",
			RequestTimeout:      5 * time.Second,
			SessionDB:           "s.db",
			LogLevel:            "warn",
			LogBackend:          "zap",
			ExpiryCheckInterval: 2 * time.Second,
		}
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("empty path leaves config unchanged", func(t *testing.T) {
		cfg := &Config{ServerURL: "http://defaults:1234", RequestTimeout: 42 * time.Second}
		require.NoError(t, parseJSON(cfg, ""))

		assert.Equal(t, "http://defaults:1234", cfg.ServerURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("absent fields keep current values", func(t *testing.T) {
		path := writeTempJSON(t, dir, "partial.json", map[string]any{"log_level": "debug"})

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJSON(cfg, path))

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "http://127.0.0.1:8000", cfg.ServerURL)
	})

	t.Run("invalid JSON is an error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.ErrorContains(t, parseJSON(&Config{}, bad), "parse config")
	})

	t.Run("missing file is an error", func(t *testing.T) {
		require.ErrorContains(t, parseJSON(&Config{}, filepath.Join(dir, "nope.json")), "read config")
	})
}
