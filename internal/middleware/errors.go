package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// RespondError maps a service error to its HTTP status. Unclassified errors
// are logged and answered with fallback.
func RespondError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case apperr.IsValidation(err):
		return ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case apperr.IsNotFound(err):
		return ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case apperr.IsPermission(err):
		return ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, apperr.ErrUpstreamUnavailable):
		return ErrorResponse(c, fiber.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Catalog is temporarily unavailable")
	}
	Logger.Error().Err(err).
		Str("request_id", RequestID(c)).
		Str("path", SanitizePath(c.Path())).
		Msg(fallback)
	return ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", fallback)
}

// ErrorHandler is the fiber.Config error handler. Routing errors keep their
// status; anything else goes through RespondError.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ErrorResponse(c, fe.Code, codeForStatus(fe.Code), fe.Message)
	}
	return RespondError(c, err, "Internal server error")
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "VALIDATION_ERROR"
	case fiber.StatusUnauthorized:
		return "UNAUTHENTICATED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		return "INTERNAL_ERROR"
	}
}
