package config

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// Config holds the full server configuration, loaded from the environment.
type Config struct {
	// Port is the HTTP listen port. The original deployment listened on 80.
	Port int `env:"PORT, default=80"`

	// StorageType selects the persistence backend.
	StorageType string `env:"STORAGE_TYPE, default=memory"`
	// DatabaseURL is the postgres connection string (required for postgres).
	DatabaseURL string `env:"DATABASE_URL"`
	// RedisURL is the redis connection URL (required for redis).
	RedisURL string `env:"REDIS_URL"`

	// SessionSecret signs session tokens. Required.
	SessionSecret string `env:"SESSION_SECRET"`
	// SessionTTL bounds how long an issued session token stays valid.
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`
	// LegacySecret, when set, enables verification of the old
	// loggedInHash/userId cookie pair issued by the previous deployment.
	LegacySecret string `env:"LEGACY_SECRET"`

	// StaticDir is served under /static/ when non-empty.
	StaticDir string `env:"STATIC_DIR, default=public"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	switch c.StorageType {
	case StorageTypeMemory:
	case StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	case StorageTypePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL required when STORAGE_TYPE=postgres")
		}
	default:
		return errors.New("STORAGE_TYPE must be memory, redis or postgres")
	}
	return nil
}
