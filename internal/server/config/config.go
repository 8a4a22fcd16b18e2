// Package config handles configuration for the prediction server: defaults,
// environment (including a .env file), an optional JSON overlay and
// command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/irispredictor/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Config holds runtime settings for the server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the HTTP API.
//   - DatabaseDSN: postgres:// URL (pgx) or sqlite:/// path.
//   - SecretKey / SigningAlgorithm: HMAC secret and JWT algorithm (HS256, HS384, HS512).
//   - AccessTokenValidityDuration: access token lifetime.
//   - TestUsername / TestPassword: the single principal allowed to log in.
//   - ModelPath: JSON model file; empty means the embedded iris model.
//   - LoginRateLimit / LoginRateBurst: per-client token bucket on /login.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP            string
	DatabaseDSN                 string
	SecretKey                   string
	SigningAlgorithm            string
	AccessTokenValidityDuration time.Duration
	TestUsername                string
	TestPassword                string
	ModelPath                   string
	LoginRateLimit              float64
	LoginRateBurst              int
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults. There is no
// default secret or test identity: those must come from the environment.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.DatabaseDSN = "sqlite:///./iris.db"
	c.SigningAlgorithm = "HS256"
	c.AccessTokenValidityDuration = 3600 * time.Second
	c.LoginRateLimit = 5
	c.LoginRateBurst = 10
	c.LogLevel = "info"
}

// Validate reports the first setting that makes the server unable to start.
func (c *Config) Validate() error {
	if c.TestUsername == "" || c.TestPassword == "" {
		return errors.New("TEST_USERNAME and TEST_PASSWORD must be set")
	}
	if c.SecretKey == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if _, ok := jwt.GetSigningMethod(c.SigningAlgorithm).(*jwt.SigningMethodHMAC); !ok {
		return fmt.Errorf("unsupported JWT algorithm %q", c.SigningAlgorithm)
	}
	if c.AccessTokenValidityDuration <= 0 {
		return fmt.Errorf("token lifetime must be positive, got %s", c.AccessTokenValidityDuration)
	}
	if c.DatabaseDSN == "" {
		return errors.New("DATABASE_URL must be set")
	}
	if c.LoginRateLimit <= 0 || c.LoginRateBurst <= 0 {
		return errors.New("login rate limit and burst must be positive")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LoadConfig builds a Config from defaults, the process environment (after
// loading ./.env when present), the optional JSON file and finally flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
