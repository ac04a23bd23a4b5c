package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays QUIZHUB_* environment variables onto config. Variables
// that are not set leave the field untouched. A non-nil environ replaces the
// process environment, which keeps tests hermetic.
func parseEnv(config *Config, environ map[string]string) error {
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(config, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
