package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces the backend's variables, e.g. FISIKAAP_SERVER_SECRET_KEY.
const EnvPrefix = "FISIKAAP_SERVER"

func parseEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("env config: %w", err)
	}
	return nil
}
