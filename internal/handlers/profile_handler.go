package handlers

import (
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	userService *services.UserService
}

func NewProfileHandler(userService *services.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	user, err := h.userService.Profile(c.UserContext(), middleware.Actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), middleware.Actor(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}
