package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling-service/config"
)

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		// Setenv restores the original value on cleanup
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		unsetenv(t, "HOST", "PORT", "APP_ENV", "LOG_LEVEL", "POSTGRES_DSN", "SHUTDOWN_TIMEOUT", "READ_HEADER_TIMEOUT", "RATE_LIMIT_RPS")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, ":8080", cfg.Addr())
		assert.False(t, cfg.AuditEnabled())
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("HOST", "127.0.0.1")
		t.Setenv("PORT", "9090")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("POSTGRES_DSN", "postgres://localhost/scheduler")
		t.Setenv("RATE_LIMIT_RPS", "0")
		t.Setenv("SHUTDOWN_TIMEOUT", "3s")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 0, cfg.RateLimitRPS)
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
		assert.True(t, cfg.AuditEnabled())
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("PORT", "70000")

		_, err := config.Load()
		require.Error(t, err)
	})
}
