// Package config loads the service configuration from an optional TOML
// file with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the service configuration. The selection pipeline's
// numeric constants (cache TTL, rate window, page ceiling) are deliberate
// fixed constants in their packages, not configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port" env:"PORT"` // Listen port
	Host string `toml:"host" env:"HOST"` // Bind address ("" = all interfaces)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "",
		},
	}
}

// Load reads the configuration file at path, falling back to defaults when
// it does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Missing file is fine, defaults apply.
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Server.Port)
	}

	return cfg, nil
}
