// Package config loads runtime configuration for the fisikaap CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c, -config or --config.
//  3. FISIKAAP_* environment variables (envconfig).
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-d string   local SQLite database path
//	-i int      online status check interval (seconds)
//	-t duration per-request HTTP timeout
//	-l string   log level
//	-debug      dump HTTP traffic
//
// # JSON schema
//
// Intervals accept strings like "3s" or integer nanoseconds; absent keys
// keep their current value:
//
//	{
//	  "server_base_url": "https://fisikaap.example.com/api",
//	  "database_path": "/var/lib/fisikaap/client.db",
//	  "online_check_interval": "30s",
//	  "health_timeout": "5s",
//	  "http_timeout": "15s",
//	  "bootstrap_cooldown": "3s",
//	  "log_level": "info",
//	  "debug": false
//	}
package config
