package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/irispredictor/internal/flagx"
	"github.com/dmitrijs2005/irispredictor/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerURL      string          `json:"server_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}
