package handlers

import (
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.projectService.List(c.UserContext(), middleware.Actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProjectListResponse{Projects: projects, Count: len(projects)})
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	project, err := h.projectService.Create(c.UserContext(), middleware.Actor(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return respondError(c, err)
	}

	project, err := h.projectService.Get(c.UserContext(), middleware.Actor(c), projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return respondError(c, err)
	}

	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	project, err := h.projectService.Update(c.UserContext(), middleware.Actor(c), projectID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.projectService.Delete(c.UserContext(), middleware.Actor(c), projectID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProjectHandler) Contributors(c *fiber.Ctx) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return respondError(c, err)
	}

	contributors, err := h.projectService.Contributors(c.UserContext(), middleware.Actor(c), projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ContributorListResponse{Contributors: contributors, Count: len(contributors)})
}

func (h *ProjectHandler) AddContributor(c *fiber.Ctx) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return respondError(c, err)
	}

	var req dto.ContributorRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	membership, err := h.projectService.AddContributor(c.UserContext(), middleware.Actor(c), projectID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(membership)
}

func (h *ProjectHandler) RemoveContributor(c *fiber.Ctx) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return respondError(c, err)
	}

	var req dto.ContributorRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	if err := h.projectService.RemoveContributor(c.UserContext(), middleware.Actor(c), projectID, &req); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
