// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles client-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A '.env' file in the
working directory is loaded first (when present) so local development does not
need exported variables.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (API client, token store) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/salonbook/internal/platform/constants"
)

// # Token Store Backends

const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the salonbook client.
type Config struct {

	// Runtime settings
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// Remote API
	BaseURL        string        `env:"API_BASE_URL"    envDefault:"http://localhost:8000"`
	APIPrefix      string        `env:"API_PREFIX"      envDefault:"/api"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// Token persistence
	TokenStore string `env:"TOKEN_STORE" envDefault:"file"`
	TokenFile  string `env:"TOKEN_FILE"`
	RedisURL   string `env:"REDIS_URL"`
}

// StubConfig holds the settings of the development stub API.
type StubConfig struct {
	Port         string `env:"STUB_PORT"          envDefault:"8000"`
	Environment  string `env:"ENVIRONMENT"        envDefault:"development"`
	Debug        bool   `env:"DEBUG"              envDefault:"false"`
	JWTSecret    string `env:"STUB_JWT_SECRET"    envDefault:"salonbook-dev-secret"`
	SeedEmail    string `env:"STUB_SEED_EMAIL"    envDefault:"owner@salonbook.dev"`
	SeedPassword string `env:"STUB_SEED_PASSWORD" envDefault:"password123"`

	// TokenTTL bounds issued access tokens.
	TokenTTL time.Duration `env:"STUB_TOKEN_TTL" envDefault:"24h"`

	// RedisURL, when set, keeps the revocation list in Redis instead of memory.
	RedisURL string `env:"REDIS_URL"`

	// CORSOrigins lists the browser origins allowed outside development.
	CORSOrigins []string `env:"STUB_CORS_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadStub parses environment variables into a [StubConfig] struct.
func LoadStub() (*StubConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &StubConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// normalize fills derived defaults and rejects inconsistent combinations.
func (c *Config) normalize() error {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.BaseURL == "" {
		c.BaseURL = constants.DefaultBaseURL
	}

	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		c.APIPrefix = "/" + c.APIPrefix
	}
	c.APIPrefix = strings.TrimRight(c.APIPrefix, "/")

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = constants.DefaultRequestTimeout
	}

	switch c.TokenStore {
	case StoreFile:
		if c.TokenFile == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return fmt.Errorf("config: cannot resolve user config dir for TOKEN_FILE: %w", err)
			}
			c.TokenFile = filepath.Join(dir, constants.DefaultTokenFile)
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("config: REDIS_URL is required when TOKEN_STORE=redis")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("config: unknown TOKEN_STORE %q", c.TokenStore)
	}

	return nil
}

// APIRoot returns the absolute URL every endpoint path is appended to.
func (c *Config) APIRoot() string {
	return c.BaseURL + c.APIPrefix
}

// IsDevelopment reports whether the client is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsDevelopment reports whether the stub API is running in development mode.
func (c *StubConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// loadDotEnv reads ./.env into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("config: failed to read .env: %w", err)
}
