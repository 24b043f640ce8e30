package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_DEBUG", "")
	t.Setenv("NOTIFY_ADMIN_EMAIL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, 10*1024*1024, cfg.App.BodyLimitBytes())
	assert.Equal(t, 15*time.Minute, cfg.HTTP.RateLimitWindow())
	assert.Equal(t, 100, cfg.HTTP.RateLimitMax)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.Notification.Timeout())
	assert.Equal(t, cfg.Notification.EmailFrom, cfg.Notification.AdminRecipient())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "60000")
	t.Setenv("NOTIFY_TIMEOUT_SECONDS", "2")
	t.Setenv("NOTIFY_ADMIN_EMAIL", "staff@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.App.Debug)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, time.Minute, cfg.HTTP.RateLimitWindow())
	assert.Equal(t, 2*time.Second, cfg.Notification.Timeout())
	assert.Equal(t, "staff@example.com", cfg.Notification.AdminRecipient())
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvAsInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
}
