package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   backend API base URL
//	-d string   local database path
//	-i int      background revalidation interval (seconds)
//	-l string   log level (debug, info, warn, error, off)
//
// Only these flags are looked at; see flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-i", "-l"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend API base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	interval := fs.Int("i", int(cfg.RevalidateInterval/time.Second), "revalidation interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Keep sub-second values from JSON/env unless -i was given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.RevalidateInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
