package middleware

import (
	"time"

	"customerapi/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CorrelationHeader carries the correlation id on requests and responses.
const CorrelationHeader = "X-Correlation-ID"

const correlationLocal = "correlationId"

// CorrelationID accepts the caller's X-Correlation-ID or generates one, echoes it on
// the response and stores it in Locals.
func CorrelationID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     CorrelationHeader,
		Generator:  uuid.NewString,
		ContextKey: correlationLocal,
	})
}

// CorrelationIDFrom returns the id assigned by CorrelationID, or "".
func CorrelationIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(correlationLocal).(string)
	return id
}

// RequestLogger puts a correlation-tagged logger into the user context and logs
// each completed request. It must run after CorrelationID.
func RequestLogger(base *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := CorrelationIDFrom(c)
		c.SetUserContext(logger.WithCorrelationID(c.UserContext(), base, id))

		if err := c.Next(); err != nil {
			// Render the error now so the logged status is the one sent.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		fields := []zap.Field{
			zap.String(logger.CorrelationIDKey, id),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		switch status := c.Response().StatusCode(); {
		case status >= fiber.StatusInternalServerError:
			base.Error("request completed", fields...)
		case status >= fiber.StatusBadRequest:
			base.Warn("request completed", fields...)
		default:
			base.Info("request completed", fields...)
		}
		return nil
	}
}
