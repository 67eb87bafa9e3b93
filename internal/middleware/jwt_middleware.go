package middleware

import (
	"strings"

	"customerapi/pkg/logger"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SubjectLocal is the Locals key holding the "sub" claim of a verified token.
const SubjectLocal = "subject"

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (jwt.MapClaims, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && strings.EqualFold(parts[0], "Bearer")) {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header format must be 'Bearer <token>'")
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			logger.FromContext(c.UserContext()).Info("JWT validation failed", zap.Error(err))
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Locals(SubjectLocal, sub)
		}
		return c.Next()
	}
}
