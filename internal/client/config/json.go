package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/flagx"
	"github.com/Sinduaditya/fisikaap-sub000/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals use
// timex.Duration so they can be strings like "3s" or integer nanoseconds.
// Pointer fields distinguish "absent" from zero.
type JsonConfig struct {
	ServerBaseURL       *string         `json:"server_base_url"`
	DatabasePath        *string         `json:"database_path"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	HealthTimeout       *timex.Duration `json:"health_timeout"`
	HTTPTimeout         *timex.Duration `json:"http_timeout"`
	BootstrapCooldown   *timex.Duration `json:"bootstrap_cooldown"`
	LogLevel            *string         `json:"log_level"`
	Debug               *bool           `json:"debug"`
}

// parseJSON overlays Config with the JSON file selected by -c, -config or
// --config. Without such a flag it does nothing.
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

	setString(&cfg.ServerBaseURL, jc.ServerBaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setDuration(&cfg.HealthTimeout, jc.HealthTimeout)
	setDuration(&cfg.HTTPTimeout, jc.HTTPTimeout)
	setDuration(&cfg.BootstrapCooldown, jc.BootstrapCooldown)
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
