package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"customerapi/internal/models"
	"customerapi/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := Root()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "customerapi 1.2.3\n", out)
}

func TestMigrate(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Run("sqlite", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("DATABASE_DSN", "file:cli_migrate?mode=memory&cache=shared")
		_, err := run(t, "migrate", "--env-file", missing)
		assert.NoError(t, err)
	})

	t.Run("memory has nothing to migrate", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "memory")
		_, err := run(t, "migrate", "--env-file", missing)
		assert.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")
		_, err := run(t, "migrate", "--env-file", missing)
		assert.ErrorContains(t, err, "failed to load config")
	})
}

func TestEventsRequiresBroker(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("RABBITMQ_URL", "")
	_, err := run(t, "events", "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "RABBITMQ_URL")
}

func TestLogEvent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := logEvent(zap.New(core))

	err := handler(models.CustomerEvent{
		Type:          models.CustomerDeleted,
		CustomerID:    7,
		Email:         "alan@example.com",
		CorrelationID: "corr-7",
		OccurredAt:    time.Now(),
	})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "customer.deleted", fields["type"])
	assert.Equal(t, int64(7), fields["customerId"])
	assert.Equal(t, "corr-7", fields["correlationId"])
}

func TestToken(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")
	t.Setenv("DB_DRIVER", "memory")

	t.Run("issues a verifiable token", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "cli-secret")
		out, err := run(t, "token", "--subject", "ops", "--env-file", missing)
		require.NoError(t, err)

		claims, err := services.NewTokenService("cli-secret", 0).ValidateToken(strings.TrimSpace(out))
		require.NoError(t, err)
		assert.Equal(t, "ops", claims["sub"])
	})

	t.Run("requires a secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := run(t, "token", "--subject", "ops", "--env-file", missing)
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}
