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

func Test_parseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_http":             "0.0.0.0:9000",
		"database_dsn":                   "postgres://db/iris",
		"secret_key":                     "json-secret",
		"signing_algorithm":              "HS384",
		"access_token_validity_duration": "15m",
		"test_username":                  "bob",
		"test_password":                  "builder",
		"model_path":                     "model.json",
		"login_rate_limit":               1,
		"login_rate_burst":               3,
		"log_level":                      "warn",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "0.0.0.0:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://db/iris", cfg.DatabaseDSN)
		assert.Equal(t, "json-secret", cfg.SecretKey)
		assert.Equal(t, "HS384", cfg.SigningAlgorithm)
		assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, "bob", cfg.TestUsername)
		assert.Equal(t, "builder", cfg.TestPassword)
		assert.Equal(t, "model.json", cfg.ModelPath)
		assert.Equal(t, 1.0, cfg.LoginRateLimit)
		assert.Equal(t, 3, cfg.LoginRateBurst)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("absent keys keep current values", func(t *testing.T) {
		partial := writeTempJSON(t, map[string]any{"log_level": "error"})
		cfg := validConfig()

		require.NoError(t, parseJson(cfg, []string{"-c", partial}))

		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, "secret", cfg.SecretKey)
		assert.Equal(t, 3600*time.Second, cfg.AccessTokenValidityDuration)
	})

	t.Run("no config flag is a no-op", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, parseJson(cfg, []string{"-a", ":1"}))
		assert.Equal(t, validConfig(), cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		err := parseJson(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")})
		require.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not json`), 0o600))
		require.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})
}
