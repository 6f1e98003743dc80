package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Sinduaditya/fisikaap-sub000/internal/flagx"
	"github.com/Sinduaditya/fisikaap-sub000/internal/timex"
)

// JsonConfig is the JSON file shape. Pointer fields distinguish "absent"
// from zero; token_validity accepts "24h" or integer nanoseconds.
type JsonConfig struct {
	HTTPAddr              *string         `json:"http_addr"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity"`
	AuthRateLimit         *int            `json:"auth_rate_limit"`
	AuthRateBurst         *int            `json:"auth_rate_burst"`
	LogLevel              *string         `json:"log_level"`
}

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

	if jc.HTTPAddr != nil {
		cfg.HTTPAddr = *jc.HTTPAddr
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.TokenValidityDuration != nil {
		cfg.TokenValidityDuration = jc.TokenValidityDuration.Duration
	}
	if jc.AuthRateLimit != nil {
		cfg.AuthRateLimit = *jc.AuthRateLimit
	}
	if jc.AuthRateBurst != nil {
		cfg.AuthRateBurst = *jc.AuthRateBurst
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
