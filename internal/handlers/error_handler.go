package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/dto"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the Fiber-level fallback for errors no handler turned into a
// response. Server errors are logged, reported to Sentry and never shown to
// the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "unhandled server error",
			"request_id", requestID(c),
			"action", c.Method()+" "+c.Path(),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
