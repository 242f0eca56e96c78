package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// parseEnv overlays cfg with the NOMAD_* variables that are set. Unset
// variables leave the current value alone.
func parseEnv(cfg *Config) error {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

// EnvUsage describes the supported environment variables.
func EnvUsage() string {
	usage, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return usage
}
