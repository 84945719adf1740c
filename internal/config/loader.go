package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. .env file in the working directory, if present
//  3. file (YAML) if SHOTFORM_CONFIG is set
//  4. env (prefix SHOTFORM_)
func Load() (*Config, error) {
	// .env is optional; a missing file is the normal case.
	_ = godotenv.Load()

	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SHOTFORM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	// Environment variables: SHOTFORM_WORKER_COUNT, and nested keys with a
	// double underscore, e.g. SHOTFORM_FUSION__MIN_CONFIDENCE ->
	// fusion.min_confidence. Single underscores stay literal to match the
	// koanf tags on the struct.
	envProvider := env.Provider("SHOTFORM_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "shotform_")
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if cfg.MetricsAddr == "" {
		return nil, fmt.Errorf("%w: metrics_addr must not be empty", ErrInvalidConfig)
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	if _, err := cfg.ValidateTiers(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
