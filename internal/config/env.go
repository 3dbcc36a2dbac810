package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv applies QUESTCHRONICLES_* environment overrides to target.
// Variables that are not set leave the current values alone.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
