package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names. The JWT_* and TEST_* names are shared with the
// deployment's .env files.
const (
	EnvHTTPAddr       = "HTTP_ADDR"
	EnvDatabaseURL    = "DATABASE_URL"
	EnvJWTSecret      = "JWT_SECRET"
	EnvJWTAlgorithm   = "JWT_ALGORITHM"
	EnvJWTExpSeconds  = "JWT_EXP_DELTA_SECONDS"
	EnvTestUsername   = "TEST_USERNAME"
	EnvTestPassword   = "TEST_PASSWORD"
	EnvModelPath      = "MODEL_PATH"
	EnvLoginRateLimit = "LOGIN_RATE_LIMIT"
	EnvLoginRateBurst = "LOGIN_RATE_BURST"
	EnvLogLevel       = "LOG_LEVEL"
)

// loadDotEnv exports variables from path into the process environment.
// Variables that are already set win; a missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func parseEnv(c *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	str(EnvHTTPAddr, &c.EndpointAddrHTTP)
	str(EnvDatabaseURL, &c.DatabaseDSN)
	str(EnvJWTSecret, &c.SecretKey)
	str(EnvJWTAlgorithm, &c.SigningAlgorithm)
	str(EnvTestUsername, &c.TestUsername)
	str(EnvTestPassword, &c.TestPassword)
	str(EnvModelPath, &c.ModelPath)
	str(EnvLogLevel, &c.LogLevel)

	if v, ok := lookup(EnvJWTExpSeconds); ok && v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJWTExpSeconds, err)
		}
		c.AccessTokenValidityDuration = time.Duration(secs) * time.Second
	}
	if v, ok := lookup(EnvLoginRateLimit); ok && v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLoginRateLimit, err)
		}
		c.LoginRateLimit = rps
	}
	if v, ok := lookup(EnvLoginRateBurst); ok && v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLoginRateBurst, err)
		}
		c.LoginRateBurst = burst
	}
	return nil
}
