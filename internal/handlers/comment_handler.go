package handlers

import (
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	projectID, issueID, err := issuePath(c)
	if err != nil {
		return respondError(c, err)
	}

	comments, err := h.commentService.List(c.UserContext(), middleware.Actor(c), projectID, issueID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CommentListResponse{Comments: comments, Count: len(comments)})
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	projectID, issueID, err := issuePath(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	comment, err := h.commentService.Create(c.UserContext(), middleware.Actor(c), projectID, issueID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommentHandler) Get(c *fiber.Ctx) error {
	projectID, issueID, commentID, err := commentPath(c)
	if err != nil {
		return respondError(c, err)
	}

	comment, err := h.commentService.Get(c.UserContext(), middleware.Actor(c), projectID, issueID, commentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	projectID, issueID, commentID, err := commentPath(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.UpdateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	comment, err := h.commentService.Update(c.UserContext(), middleware.Actor(c), projectID, issueID, commentID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	projectID, issueID, commentID, err := commentPath(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.commentService.Delete(c.UserContext(), middleware.Actor(c), projectID, issueID, commentID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func commentPath(c *fiber.Ctx) (projectID, issueID, commentID uuid.UUID, err error) {
	if projectID, issueID, err = issuePath(c); err != nil {
		return
	}
	commentID, err = pathID(c, "comment_id")
	return
}
