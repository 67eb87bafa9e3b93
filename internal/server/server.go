// Package server assembles the Fiber application: middleware, health endpoints and the customer API.
package server

import (
	"context"

	"customerapi/internal/handlers"
	"customerapi/internal/middleware"
	"customerapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const (
	LivenessEndpoint  = "/health/live"
	ReadinessEndpoint = "/health/ready"
)

// Dependencies are the collaborators New wires into the app.
type Dependencies struct {
	Logger    *zap.Logger
	Customers *services.CustomerService
	// Ready checks the store. Nil means always ready.
	Ready     func(ctx context.Context) error
	RateLimit middleware.RateLimitConfig
	// Tokens enables bearer-token checks on the customer API when set.
	Tokens middleware.TokenValidator
}

// New builds the Fiber app.
func New(deps Dependencies) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "customerapi",
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(middleware.CorrelationID())
	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(healthcheck.New(healthcheck.Config{
		LivenessProbe:    func(*fiber.Ctx) bool { return true },
		LivenessEndpoint: LivenessEndpoint,
		ReadinessProbe: func(c *fiber.Ctx) bool {
			return deps.Ready == nil || deps.Ready(c.UserContext()) == nil
		},
		ReadinessEndpoint: ReadinessEndpoint,
	}))

	handlers.NewHealthHandler(deps.Ready).RegisterRoutes(app)

	apiV1 := app.Group("/api/v1", middleware.RateLimit(deps.RateLimit))
	if deps.Tokens != nil {
		apiV1 = apiV1.Group("", middleware.AuthRequired(deps.Tokens))
	}
	handlers.NewCustomerHandler(deps.Customers).RegisterRoutes(apiV1)

	return app
}
