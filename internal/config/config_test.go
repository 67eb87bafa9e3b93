package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"customerapi/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(config.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.Port)
	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 10000, cfg.Hashing.Iterations)
	assert.Equal(t, 60, cfg.RateLimit.Max)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "customer_events", cfg.RabbitMQ.Queue)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestFromViper_Overrides(t *testing.T) {
	v := config.New()
	v.Set("DB_DRIVER", "SQLite")
	v.Set("DATABASE_DSN", "file::memory:")
	v.Set("HASH_ITERATIONS", 20000)
	v.Set("RATE_LIMIT_WINDOW", "30s")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 20000, cfg.Hashing.Iterations)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestFromViper_Invalid(t *testing.T) {
	v := config.New()
	v.Set("DB_DRIVER", "oracle")
	_, err := config.FromViper(v)
	assert.Error(t, err)

	v = config.New()
	v.Set("HASH_ITERATIONS", 0)
	_, err = config.FromViper(v)
	assert.Error(t, err)

	v = config.New()
	v.Set("DATABASE_DSN", "")
	_, err = config.FromViper(v)
	assert.Error(t, err)

	v = config.New()
	v.Set("DB_DRIVER", "memory")
	v.Set("DATABASE_DSN", "")
	_, err = config.FromViper(v)
	assert.NoError(t, err)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("RATE_LIMIT_MAX=5\nRABBITMQ_QUEUE=audit\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("RATE_LIMIT_MAX")
		os.Unsetenv("RABBITMQ_QUEUE")
	})

	cfg, err := config.Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.RateLimit.Max)
	assert.Equal(t, "audit", cfg.RabbitMQ.Queue)

	_, err = config.Load(filepath.Join(dir, "missing.env"))
	assert.NoError(t, err)
}
