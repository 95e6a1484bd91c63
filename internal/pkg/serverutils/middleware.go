package serverutils

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware recovers typed errors at the HTTP boundary and
// converts them to structured JSON. Nothing below this middleware swallows
// errors silently.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.StatusCode).JSON(fiber.Map{
				"error": appErr,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

// ErrorResponse builds the ad hoc error envelope used by handlers that
// respond directly instead of returning an error up the chain.
func ErrorResponse(statusCode int, message string) fiber.Map {
	return fiber.Map{
		"error": &AppError{
			Type:       TypeValidation,
			StatusCode: statusCode,
			Message:    message,
		},
	}
}

// BearerToken extracts the token from the Authorization header. The second
// return is false when the header is missing or not a bearer scheme.
func BearerToken(ctx *fiber.Ctx) (string, bool) {
	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), true
	}
	// The extension historically sent the raw token without a scheme.
	return authHeader, true
}
