package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADMIN_API_KEY", "super-secret")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_RequiresAdminKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/licentra")
	t.Setenv("ADMIN_API_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "ADMIN_API_KEY")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/licentra")
	t.Setenv("ADMIN_API_KEY", "super-secret")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.Equal(t, 60*time.Second, cfg.RateLimitWindow)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/licentra")
	t.Setenv("ADMIN_API_KEY", "super-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_REQUESTS", "10")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "5")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 10, cfg.RateLimitRequests)
	assert.Equal(t, 5*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/licentra")
	t.Setenv("ADMIN_API_KEY", "super-secret")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.ErrorContains(t, err, "PORT")
}
