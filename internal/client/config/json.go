package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/flagx"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Intervals use
// timex.Duration, so both "30s" and integer nanoseconds are accepted.
type JsonConfig struct {
	BaseURL            string         `json:"base_url"`
	DBPath             string         `json:"db_path"`
	RevalidateInterval timex.Duration `json:"revalidate_interval"`
	LogLevel           string         `json:"log_level"`
	LogFile            string         `json:"log_file"`
}

// parseJSON overlays cfg with the non-empty values of the file passed via
// -c/-config. No flag means nothing to do.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.RevalidateInterval.Duration != 0 {
		cfg.RevalidateInterval = jc.RevalidateInterval.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFile != "" {
		cfg.LogFile = jc.LogFile
	}
	return nil
}
