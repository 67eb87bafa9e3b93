package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports process and store health.
type HealthHandler struct {
	ping func(ctx context.Context) error
}

// NewHealthHandler creates a HealthHandler. ping checks the store; nil means no store to check.
func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// RegisterRoutes registers GET /health.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth answers 200 when the store responds and 503 otherwise.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	status, database, code := "ok", "up", fiber.StatusOK
	if h.ping != nil {
		if err := h.ping(c.UserContext()); err != nil {
			status, database, code = "unavailable", "down", fiber.StatusServiceUnavailable
		}
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"time":     time.Now().UTC(),
		"database": database,
	})
}
