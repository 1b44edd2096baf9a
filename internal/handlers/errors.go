package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// statusFor maps a service or access error to its HTTP status. Unknown errors
// are server errors.
func statusFor(err error) int {
	switch {
	case errors.Is(err, access.ErrNotAuthenticated),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, access.ErrNotAContributor),
		errors.Is(err, access.ErrNotOwner):
		return fiber.StatusForbidden
	case errors.Is(err, access.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, access.ErrAlreadyMember),
		errors.Is(err, access.ErrCannotRemoveOwner),
		errors.Is(err, services.ErrValidationFailed):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUsernameTaken):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code >= fiber.StatusInternalServerError {
		attrs := []any{
			"request_id", requestID(c),
			"action", c.Method() + " " + c.Route().Path,
			"error", err.Error(),
		}
		if actor := middleware.Actor(c); actor != nil {
			attrs = append(attrs, "actor_id", actor.ID.String())
		}
		if projectID := c.Params("project_id"); projectID != "" {
			attrs = append(attrs, "project_id", projectID)
		}
		slog.ErrorContext(c.UserContext(), "request failed", attrs...)
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}

func invalidBody(c *fiber.Ctx) error {
	return badRequest(c, "Invalid request body")
}

// pathID parses a uuid route parameter. A malformed id cannot name any
// resource, so it is reported as not found.
func pathID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, access.ErrNotFound
	}
	return id, nil
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
