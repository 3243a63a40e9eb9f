package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // zone lookups must not depend on the host image

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables that steer loading itself.
const (
	envPrefix     = "REGBOARD_"
	envConfigFile = "REGBOARD_CONFIG"
	envDotenvFile = "REGBOARD_DOTENV"
	defaultDotenv = ".env"
)

// Load builds a Config by layering defaults, an optional dotenv file, an
// optional YAML file and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. dotenv file (REGBOARD_DOTENV, default ".env" when present)
//  3. file (YAML) if REGBOARD_CONFIG is set
//  4. env (prefix REGBOARD_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if err := loadDotenv(k); err != nil {
		return nil, err
	}

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: yaml %s: %w", ErrLoadConfig, path, err)
		}
	}

	// REGBOARD_RANGE_NAME -> range_name. Underscores are kept to match the
	// flat koanf tags on the struct.
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
}

// loadDotenv reads REGBOARD_* keys from a dotenv file. A missing default
// file is skipped; a missing explicitly named file is an error.
func loadDotenv(k *koanf.Koanf) error {
	path, explicit := os.LookupEnv(envDotenvFile)
	if !explicit || path == "" {
		path = defaultDotenv
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}
	if err := k.Load(file.Provider(path), dotenv.ParserEnv(envPrefix, ".", envKey)); err != nil {
		return fmt.Errorf("%w: dotenv %s: %w", ErrLoadConfig, path, err)
	}
	return nil
}

// Validate checks everything that can be checked without touching the
// credentials or the network.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	switch {
	case strings.TrimSpace(c.Addr) == "":
		return invalid("addr must not be empty")
	case strings.TrimSpace(c.SpreadsheetID) == "":
		return invalid("spreadsheet_id must not be empty")
	case strings.TrimSpace(c.RangeName) == "":
		return invalid("range_name must not be empty")
	case c.FetchTimeout <= 0:
		return invalid("fetch_timeout must be positive")
	}

	if _, err := c.Location(); err != nil {
		return invalid("timezone %q: %v", c.Timezone, err)
	}

	switch c.CacheBackend {
	case CacheNone:
	case CacheMemory:
		if c.CacheTTL <= 0 {
			return invalid("cache_ttl must be positive when caching")
		}
	case CacheRedis:
		if c.CacheTTL <= 0 {
			return invalid("cache_ttl must be positive when caching")
		}
		if strings.TrimSpace(c.RedisAddr) == "" {
			return invalid("redis_addr must not be empty for the redis cache")
		}
	default:
		return invalid("unknown cache_backend %q", c.CacheBackend)
	}

	switch c.CredentialsSource {
	case SourceInline, SourceFile, SourceEnv:
	default:
		return invalid("unknown credentials_source %q", c.CredentialsSource)
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return nil, errors.New("timezone must not be empty")
	}
	return time.LoadLocation(c.Timezone)
}
