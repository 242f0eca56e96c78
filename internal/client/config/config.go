package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the feed CLI.
//
// Fields:
//   - BaseURL: backend API root including the version prefix.
//   - DBPath: SQLite file backing the device key-value store.
//   - RevalidateInterval: how often the active tab is revalidated in the
//     background, the terminal stand-in for a screen regaining focus.
//   - LogLevel, LogFile: console level and optional JSON log file.
type Config struct {
	BaseURL            string        `env:"NOMAD_BASE_URL" env-description:"backend API base URL"`
	DBPath             string        `env:"NOMAD_DB_PATH" env-description:"local database path"`
	RevalidateInterval time.Duration `env:"NOMAD_REVALIDATE_INTERVAL" env-description:"background revalidation interval, e.g. 30s"`
	LogLevel           string        `env:"NOMAD_LOG_LEVEL" env-description:"log level (debug, info, warn, error, off)"`
	LogFile            string        `env:"NOMAD_LOG_FILE" env-description:"optional JSON log file"`
}

// LoadDefaults populates c with defaults suitable for a local backend.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:3000/api/v1"
	c.DBPath = "nomad.db"
	c.RevalidateInterval = time.Minute
	c.LogLevel = "info"
	c.LogFile = ""
}

// Load builds a Config from defaults, then the JSON file named by -c/-config,
// then NOMAD_* environment variables, then flags. Later sources win.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if cfg.RevalidateInterval <= 0 {
		return nil, fmt.Errorf("revalidate interval must be positive, got %s", cfg.RevalidateInterval)
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args. It panics on invalid configuration, which
// only happens at startup.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
