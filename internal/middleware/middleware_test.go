package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"customerapi/internal/services"
	"customerapi/pkg/logger"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCorrelationAndRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := fiber.New()
	app.Use(CorrelationID(), RequestLogger(zap.New(core)))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(logger.CorrelationID(c.UserContext()))
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	t.Run("propagates caller id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set(CorrelationHeader, "abc-123")
		resp, err := app.Test(req)
		require.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "abc-123", string(body))
		assert.Equal(t, "abc-123", resp.Header.Get(CorrelationHeader))
	})

	t.Run("generates id when absent", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		require.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		assert.Len(t, string(body), 36)
		assert.Equal(t, string(body), resp.Header.Get(CorrelationHeader))
	})

	t.Run("logs rendered error status", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		entries := logs.FilterField(zap.Int("status", fiber.StatusNotFound)).All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, "/missing", entries[0].ContextMap()["path"])
	})
}

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimit(RateLimitConfig{Max: 2, Window: time.Minute}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"retryAfter"`)
	assert.Contains(t, string(body), `"message"`)
}

func signToken(t *testing.T, secret string, method jwt.SigningMethod, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"sub": "tester",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthRequired(t *testing.T) {
	const secret = "test-secret"
	app := fiber.New()
	app.Use(AuthRequired(services.NewTokenService(secret, time.Hour)))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(SubjectLocal).(string))
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", fiber.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other", jwt.SigningMethodHS256, time.Now().Add(time.Hour)), fiber.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, secret, jwt.SigningMethodHS256, time.Now().Add(-time.Hour)), fiber.StatusUnauthorized},
		{"valid", "Bearer " + signToken(t, secret, jwt.SigningMethodHS256, time.Now().Add(time.Hour)), fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == fiber.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, "tester", string(body))
			}
		})
	}
}
