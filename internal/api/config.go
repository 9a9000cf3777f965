package api

import (
	"os"
	"strconv"
)

// Config holds connection settings for the Capacinator server.
type Config struct {
	BaseURL    string
	Token      string
	TimeoutMs  int
	MaxRetries int // applied to idempotent GETs only
}

// DefaultConfig returns a Config with sensible defaults for a local server.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:3110",
		TimeoutMs:  10000,
		MaxRetries: 1,
	}
}

// LoadConfig reads connection settings from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CAPACINATOR_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CAPACINATOR_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("CAPACINATOR_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("CAPACINATOR_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg
}
