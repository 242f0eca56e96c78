// Package config loads runtime configuration for the feed CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. NOMAD_* environment variables, read with cleanenv.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend API base URL
//	-d string   local database path
//	-i int      background revalidation interval (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "base_url": "https://api.example.com/api/v1",
//	  "db_path": "nomad.db",
//	  "revalidate_interval": "1m",
//	  "log_level": "debug",
//	  "log_file": "client.log"
//	}
package config
