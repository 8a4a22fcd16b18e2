// Package config loads settings for the iris client CLI.
package config

import (
	"errors"
	"os"
	"time"
)

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerURL: base URL of the prediction service.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config from defaults, then the optional JSON file,
// then flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if cfg.ServerURL == "" {
		return nil, errors.New("server URL must be set")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, errors.New("request timeout must be positive")
	}
	return cfg, nil
}
