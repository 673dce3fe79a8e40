package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"http_addr":                       "0.0.0.0:9000",
		"db_driver":                       "pgx",
		"database_dsn":                    "postgres://u:p@db/escc",
		"db_max_open_conns":               20,
		"store_call_timeout":              "5s",
		"access_token_secret":             "a",
		"refresh_token_secret":            "r",
		"access_token_validity_duration":  "15m",
		"refresh_token_validity_duration": "48h",
		"rate_limit_per_minute":           0,
		"cors_allowed_origins":            []string{"https://reports.example.com"},
		"default_page_limit":              25,
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "0.0.0.0:9000", cfg.HTTPAddr)
		assert.Equal(t, DriverPgx, cfg.DBDriver)
		assert.Equal(t, "postgres://u:p@db/escc", cfg.DatabaseDSN)
		assert.Equal(t, 20, cfg.DBMaxOpenConns)
		assert.Equal(t, 5*time.Second, cfg.StoreCallTimeout)
		assert.Equal(t, "a", cfg.AccessTokenSecret)
		assert.Equal(t, "r", cfg.RefreshTokenSecret)
		assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 48*time.Hour, cfg.RefreshTokenValidityDuration)
		assert.Equal(t, 0, cfg.RateLimitPerMinute)
		assert.Equal(t, []string{"https://reports.example.com"}, cfg.CORSAllowedOrigins)
		assert.Equal(t, 25, cfg.DefaultPageLimit)
	})

	t.Run("absent fields keep current values", func(t *testing.T) {
		partial := writeTempJSON(t, map[string]any{"log_format": "text"})
		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-c", partial}))

		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, ":3000", cfg.HTTPAddr)
		assert.Equal(t, time.Hour, cfg.AccessTokenValidityDuration)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(cfg, nil))
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Error(t, parseJSON(defaults(), []string{"-c", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJSON(defaults(), []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}
