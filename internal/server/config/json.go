package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/irispredictor/internal/flagx"
	"github.com/dmitrijs2005/irispredictor/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Durations
// accept "1h" strings or integer seconds (see timex.Duration).
type JsonConfig struct {
	EndpointAddrHTTP            string          `json:"endpoint_addr_http"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	SigningAlgorithm            string          `json:"signing_algorithm"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	TestUsername                string          `json:"test_username"`
	TestPassword                string          `json:"test_password"`
	ModelPath                   string          `json:"model_path"`
	LoginRateLimit              float64         `json:"login_rate_limit"`
	LoginRateBurst              int             `json:"login_rate_burst"`
	LogLevel                    string          `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config. Only keys
// present with non-zero values replace what is already in config.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SecretKey, c.SecretKey)
	set(&config.SigningAlgorithm, c.SigningAlgorithm)
	set(&config.TestUsername, c.TestUsername)
	set(&config.TestPassword, c.TestPassword)
	set(&config.ModelPath, c.ModelPath)
	set(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.LoginRateLimit != 0 {
		config.LoginRateLimit = c.LoginRateLimit
	}
	if c.LoginRateBurst != 0 {
		config.LoginRateBurst = c.LoginRateBurst
	}
	return nil
}
