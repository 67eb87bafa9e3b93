package handlers

import (
	"errors"
	"net/http"

	"customerapi/internal/apperrors"
	"customerapi/internal/middleware"
	"customerapi/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MIMEProblemJSON is the content type of RFC 7807 error bodies.
const MIMEProblemJSON = "application/problem+json"

// ProblemDetails is the RFC 7807 body returned for every error response.
type ProblemDetails struct {
	Type    string              `json:"type"`
	Title   string              `json:"title"`
	Status  int                 `json:"status"`
	Detail  string              `json:"detail,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	TraceID string              `json:"traceId,omitempty"`
}

var problemTypes = map[int]string{
	fiber.StatusBadRequest:          "https://tools.ietf.org/html/rfc9110#section-15.5.1",
	fiber.StatusUnauthorized:        "https://tools.ietf.org/html/rfc9110#section-15.5.2",
	fiber.StatusNotFound:            "https://tools.ietf.org/html/rfc9110#section-15.5.5",
	fiber.StatusMethodNotAllowed:    "https://tools.ietf.org/html/rfc9110#section-15.5.6",
	fiber.StatusTooManyRequests:     "https://tools.ietf.org/html/rfc6585#section-4",
	fiber.StatusInternalServerError: "https://tools.ietf.org/html/rfc9110#section-15.6.1",
	fiber.StatusServiceUnavailable:  "https://tools.ietf.org/html/rfc9110#section-15.6.4",
}

// requestValidationError carries binding failures detected before the service is called.
type requestValidationError struct {
	fields map[string][]string
}

func (e *requestValidationError) Error() string {
	return "request validation failed"
}

func newProblem(c *fiber.Ctx, status int, detail string) ProblemDetails {
	typ, ok := problemTypes[status]
	if !ok {
		typ = "about:blank"
	}
	return ProblemDetails{
		Type:    typ,
		Title:   http.StatusText(status),
		Status:  status,
		Detail:  detail,
		TraceID: middleware.CorrelationIDFrom(c),
	}
}

func writeProblem(c *fiber.Ctx, p ProblemDetails) error {
	return c.Status(p.Status).JSON(p, MIMEProblemJSON)
}

// ErrorHandler renders every error returned by a handler as problem details.
// Unclassified errors become an opaque 500 and are logged.
func ErrorHandler(base *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var reqErr *requestValidationError
		if errors.As(err, &reqErr) {
			p := newProblem(c, fiber.StatusBadRequest, "One or more validation errors occurred.")
			p.Errors = reqErr.fields
			return writeProblem(c, p)
		}

		if appErr, ok := apperrors.As(err); ok {
			switch appErr.Kind {
			case apperrors.KindValidation:
				p := newProblem(c, fiber.StatusBadRequest, appErr.Message)
				if appErr.Field != "" {
					p.Errors = map[string][]string{appErr.Field: {appErr.Message}}
				}
				return writeProblem(c, p)
			case apperrors.KindNotFound:
				return writeProblem(c, newProblem(c, fiber.StatusNotFound, appErr.Message))
			}
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			return writeProblem(c, newProblem(c, fiberErr.Code, fiberErr.Message))
		}

		base.Error("unhandled error",
			zap.String(logger.CorrelationIDKey, middleware.CorrelationIDFrom(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return writeProblem(c, newProblem(c, fiber.StatusInternalServerError, "An unexpected error occurred."))
	}
}
