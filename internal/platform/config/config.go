// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config is everything cmd/api needs to wire the server.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	StorageBackend     string
	DatabaseURL        string
	IdempotencyBackend string
	IdempotencyTTL     time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	IntakeURL     string
	IntakeTimeout time.Duration

	// AccessConfig is an optional path to a YAML file with route table rules.
	AccessConfig string

	ShutdownTimeout time.Duration
}

// LoadFromEnv reads Config using os.Getenv.
func LoadFromEnv() (Config, error) {
	return Load(os.Getenv)
}

// Load reads Config through getenv. Unset variables take defaults; malformed ones are errors
// naming the variable.
func Load(getenv func(string) string) (Config, error) {
	get := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:          get("PORT", "8080"),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogFormat:     get("LOG_FORMAT", "json"),
		DatabaseURL:   getenv("DATABASE_URL"),
		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		IntakeURL:     getenv("INTAKE_URL"),
		AccessConfig:  getenv("ACCESS_CONFIG"),
	}

	cfg.StorageBackend = get("STORAGE_BACKEND", StorageMemory)
	switch cfg.StorageBackend {
	case StorageMemory, StoragePostgres:
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be memory or postgres, got %q", cfg.StorageBackend)
	}

	// Idempotency records follow the storage backend unless set explicitly.
	cfg.IdempotencyBackend = get("IDEMPOTENCY_BACKEND", cfg.StorageBackend)
	switch cfg.IdempotencyBackend {
	case StorageMemory, StoragePostgres, StorageRedis:
	default:
		return Config{}, fmt.Errorf("IDEMPOTENCY_BACKEND must be memory, postgres or redis, got %q", cfg.IdempotencyBackend)
	}

	if (cfg.StorageBackend == StoragePostgres || cfg.IdempotencyBackend == StoragePostgres) && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required for the postgres backend")
	}

	var err error
	if cfg.RedisDB, err = intVar(getenv, "REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyTTL, err = durationVar(getenv, "IDEMPOTENCY_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.IntakeTimeout, err = durationVar(getenv, "INTAKE_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = durationVar(getenv, "SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func durationVar(getenv func(string) string, k string, def time.Duration) (time.Duration, error) {
	v := getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration (e.g. 30s): %w", k, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", k)
	}
	return d, nil
}

func intVar(getenv func(string) string, k string, def int) (int, error) {
	v := getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", k, err)
	}
	return n, nil
}
