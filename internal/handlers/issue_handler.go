package handlers

import (
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IssueHandler struct {
	issueService *services.IssueService
}

func NewIssueHandler(issueService *services.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

func (h *IssueHandler) List(c *fiber.Ctx) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return respondError(c, err)
	}

	issues, err := h.issueService.List(c.UserContext(), middleware.Actor(c), projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.IssueListResponse{Issues: issues, Count: len(issues)})
}

func (h *IssueHandler) Create(c *fiber.Ctx) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return respondError(c, err)
	}

	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	issue, err := h.issueService.Create(c.UserContext(), middleware.Actor(c), projectID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(issue)
}

func (h *IssueHandler) Get(c *fiber.Ctx) error {
	projectID, issueID, err := issuePath(c)
	if err != nil {
		return respondError(c, err)
	}

	issue, err := h.issueService.Get(c.UserContext(), middleware.Actor(c), projectID, issueID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(issue)
}

func (h *IssueHandler) Update(c *fiber.Ctx) error {
	projectID, issueID, err := issuePath(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.UpdateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	issue, err := h.issueService.Update(c.UserContext(), middleware.Actor(c), projectID, issueID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(issue)
}

func (h *IssueHandler) Delete(c *fiber.Ctx) error {
	projectID, issueID, err := issuePath(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.issueService.Delete(c.UserContext(), middleware.Actor(c), projectID, issueID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func issuePath(c *fiber.Ctx) (projectID, issueID uuid.UUID, err error) {
	if projectID, err = pathID(c, "project_id"); err != nil {
		return
	}
	issueID, err = pathID(c, "issue_id")
	return
}
