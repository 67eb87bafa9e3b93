package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitConfig bounds requests per client IP within a fixed window.
type RateLimitConfig struct {
	Max    int
	Window time.Duration
	// Storage shares counters between replicas. Nil keeps them in memory.
	Storage fiber.Storage
}

// RateLimit answers 429 with a Retry-After header once a client exceeds Max requests per Window.
func RateLimit(cfg RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		Storage:    cfg.Storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			retryAfter, _ := strconv.Atoi(c.GetRespHeader(fiber.HeaderRetryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message":    "Too many requests, please try again later",
				"retryAfter": retryAfter,
			})
		},
	})
}
