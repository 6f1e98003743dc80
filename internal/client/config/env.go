package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces the environment variables read by parseEnv, e.g.
// FISIKAAP_SERVER_BASE_URL.
const EnvPrefix = "FISIKAAP"

// parseEnv overlays Config with FISIKAAP_* variables. Unset variables leave
// the current value alone.
func parseEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("env config: %w", err)
	}
	return nil
}
