// Package envconf reads configuration from environment variables.
//
// It is both working configuration for the lessons that talk to real
// services and a lesson subject of its own: envconf_test.go shows how to
// test environment-driven code with t.Setenv.
package envconf

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// String returns the value of key, or fallback when the variable is unset
// or empty.
func String(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Bool returns the value of key parsed as a boolean, or fallback when the
// variable is unset. Unparseable values also fall back rather than error;
// a missing feature flag should never take a process down.
func Bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// Int returns the value of key parsed as an integer, or fallback when the
// variable is unset.
func Int(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// Duration returns the value of key parsed with time.ParseDuration, or
// fallback when the variable is unset.
func Duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// Integration holds the endpoints for lessons that exercise real services.
// All fields are optional: an empty field means the matching lessons skip.
type Integration struct {
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// LoadIntegration reads the integration endpoints from the environment.
func LoadIntegration() (Integration, error) {
	redisDB, err := Int("TEST_REDIS_DB", 0)
	if err != nil {
		return Integration{}, err
	}
	return Integration{
		PostgresDSN:   String("TEST_POSTGRES_DSN", ""),
		RedisAddr:     String("TEST_REDIS_ADDR", ""),
		RedisPassword: String("TEST_REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
	}, nil
}

// HasPostgres reports whether a Postgres endpoint is configured.
func (i Integration) HasPostgres() bool {
	return i.PostgresDSN != ""
}

// HasRedis reports whether a Redis endpoint is configured.
func (i Integration) HasRedis() bool {
	return i.RedisAddr != ""
}
