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

// Load builds a Config by layering defaults, optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if VAULTLOG_CONFIG is set
//  3. env (prefix VAULTLOG_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("VAULTLOG_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: VAULTLOG_MEDIUM, VAULTLOG_DATA_DIR, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("VAULTLOG_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "vaultlog_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	switch cfg.MediumDriver {
	case "memory", "file", "sqlite":
	default:
		return nil, fmt.Errorf("%w: unknown medium driver %q", ErrInvalidConfig, cfg.MediumDriver)
	}
	if cfg.MetricsAddr == "" {
		return nil, fmt.Errorf("%w: metrics_addr must not be empty", ErrInvalidConfig)
	}
	return &cfg, nil
}

// MediumPath returns the driver-specific path argument for the
// configured medium.
func (c *Config) MediumPath() string {
	if c.MediumDriver == "file" {
		return c.DataDir
	}
	return c.SQLitePath
}
