package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/flagx"
)

// ownFlags are the flags parseFlags consumes; everything else on the
// command line belongs to cobra.
var ownFlags = []string{
	"-a", "--server",
	"-d", "--database",
	"-i", "--interval",
	"-t", "--timeout",
	"-l", "--log-level",
	"-debug", "--debug",
}

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   backend base URL, e.g. https://api.example.com/api
//	-d string   path of the local SQLite database
//	-i int      online check interval in seconds
//	-t duration per-request HTTP timeout (0 = transport default)
//	-l string   log level: debug, info, warn, error
//	-debug      dump HTTP traffic to the log
//
// The long spellings --server, --database, --interval, --timeout and
// --log-level are accepted too.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("fisikaap", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	for _, name := range []string{"a", "server"} {
		fs.StringVar(&cfg.ServerBaseURL, name, cfg.ServerBaseURL, "backend base URL")
	}
	for _, name := range []string{"d", "database"} {
		fs.StringVar(&cfg.DatabasePath, name, cfg.DatabasePath, "local database path")
	}
	var onlineCheckInterval int
	for _, name := range []string{"i", "interval"} {
		fs.IntVar(&onlineCheckInterval, name, int(cfg.OnlineCheckInterval/time.Second), "online check interval (in seconds)")
	}
	for _, name := range []string{"t", "timeout"} {
		fs.DurationVar(&cfg.HTTPTimeout, name, cfg.HTTPTimeout, "per-request HTTP timeout")
	}
	for _, name := range []string{"l", "log-level"} {
		fs.StringVar(&cfg.LogLevel, name, cfg.LogLevel, "log level")
	}
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "dump HTTP traffic")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" || f.Name == "interval" {
			cfg.OnlineCheckInterval = time.Duration(onlineCheckInterval) * time.Second
		}
	})
	return nil
}
