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
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PLACAR_CONFIG is set
//  3. env (prefix PLACAR_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PLACAR_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PLACAR_ADDR, PLACAR_FEED_URL, ...
	// Keys map like PLACAR_LIVE_INTERVAL_SEC -> live_interval_sec,
	// preserving underscores to match the koanf tags on the struct.
	envProvider := env.Provider("PLACAR_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "placar_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.LiveIntervalSec <= 0 || cfg.IdleIntervalSec <= 0 || cfg.PreMatchIntervalSec <= 0 {
		return nil, fmt.Errorf("%w: poll intervals must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
