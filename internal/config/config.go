package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds process-wide settings loaded once at startup. The admin key is part
// of the constructed configuration; a missing value fails here, not per request.
type Config struct {
	DatabaseURL string
	AdminAPIKey string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Port int

	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load reads configuration from the environment and validates required values.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		AdminAPIKey:       os.Getenv("ADMIN_API_KEY"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		Port:              8080,
		RateLimitRequests: 100,
		RateLimitWindow:   60 * time.Second,
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required")
	}
	if cfg.AdminAPIKey == "" {
		return nil, errors.New("ADMIN_API_KEY environment variable is required")
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			cfg.RedisDB = db
		}
	}
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, errors.New("PORT must be a number")
		}
		cfg.Port = port
	}
	if reqStr := os.Getenv("RATE_LIMIT_REQUESTS"); reqStr != "" {
		if n, err := strconv.Atoi(reqStr); err == nil && n > 0 {
			cfg.RateLimitRequests = n
		}
	}
	if winStr := os.Getenv("RATE_LIMIT_WINDOW_SECONDS"); winStr != "" {
		if n, err := strconv.Atoi(winStr); err == nil && n > 0 {
			cfg.RateLimitWindow = time.Duration(n) * time.Second
		}
	}

	return cfg, nil
}
