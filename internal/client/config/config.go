package config

import (
	"fmt"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
)

// Config holds runtime settings for the fisikaap CLI.
//
// Units: every interval is a time.Duration.
type Config struct {
	ServerBaseURL       string        `envconfig:"SERVER_BASE_URL"`
	DatabasePath        string        `envconfig:"DATABASE_PATH"`
	OnlineCheckInterval time.Duration `envconfig:"ONLINE_CHECK_INTERVAL"`
	HealthTimeout       time.Duration `envconfig:"HEALTH_TIMEOUT"`
	HTTPTimeout         time.Duration `envconfig:"HTTP_TIMEOUT"`
	BootstrapCooldown   time.Duration `envconfig:"BOOTSTRAP_COOLDOWN"`
	LogLevel            string        `envconfig:"LOG_LEVEL"`
	Debug               bool          `envconfig:"DEBUG"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080/api"
	c.DatabasePath = "fisikaap.db"
	c.OnlineCheckInterval = 30 * time.Second
	c.HealthTimeout = 5 * time.Second
	c.HTTPTimeout = 0
	c.BootstrapCooldown = 3 * time.Second
	c.LogLevel = "info"
	c.Debug = false
}

// Load builds a Config from defaults, then the JSON file named by -c/-config,
// then FISIKAAP_* environment variables, then command-line flags. Later
// sources take precedence over earlier ones.
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
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.ServerBaseURL == "":
		return fmt.Errorf("server base URL must be set")
	case c.DatabasePath == "":
		return fmt.Errorf("database path must be set")
	case c.OnlineCheckInterval <= 0:
		return fmt.Errorf("online check interval must be positive")
	case c.HealthTimeout <= 0:
		return fmt.Errorf("health timeout must be positive")
	case c.HTTPTimeout < 0:
		return fmt.Errorf("http timeout must not be negative")
	case c.BootstrapCooldown < 0:
		return fmt.Errorf("bootstrap cooldown must not be negative")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
