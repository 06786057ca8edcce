package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if HAPPYHOUR_CONFIG is set
//  3. env (prefix HAPPYHOUR_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("HAPPYHOUR_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: HAPPYHOUR_ADDR, HAPPYHOUR_DATA_FILE, ...
	// Map env keys like HAPPYHOUR_DATA_FILE -> data_file (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("HAPPYHOUR_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "happyhour_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.DataFile == "" {
		return fmt.Errorf("%w: data_file must not be empty", ErrInvalidConfig)
	}
	switch c.DefaultTime {
	case "now", "later", "tomorrow":
	default:
		return fmt.Errorf("%w: default_time must be one of now, later, tomorrow", ErrInvalidConfig)
	}
	return nil
}
