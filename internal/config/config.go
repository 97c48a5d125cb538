package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DBPath  string `env:"UNITIFY_DB_PATH"`
	Format  string `env:"UNITIFY_FORMAT" envDefault:"text"`
	Debug   bool   `env:"UNITIFY_DEBUG" envDefault:"false"`
	LogJSON bool   `env:"UNITIFY_LOG_JSON" envDefault:"false"`
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
