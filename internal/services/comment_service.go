package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/events"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService struct {
	db     *gorm.DB
	engine *access.Engine
	scope  *Scope
	pub    events.Publisher
}

func NewCommentService(db *gorm.DB, engine *access.Engine, scope *Scope, pub events.Publisher) *CommentService {
	return &CommentService{db: db, engine: engine, scope: scope, pub: pub}
}

func (s *CommentService) Create(ctx context.Context, actor *models.User, projectID, issueID uuid.UUID, req *dto.CreateCommentRequest) (*models.Comment, error) {
	issue, err := s.scope.Issue(ctx, actor, projectID, issueID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Authorize(ctx, actor, access.ActionCreate, issue); err != nil {
		return nil, err
	}

	comment := models.Comment{
		Description: strings.TrimSpace(req.Description),
		AuthorID:    actor.ID,
		IssueID:     issue.ID,
	}
	if err := validateComment(&comment); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Omit("Issue").Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.Issue = *issue

	publish(ctx, s.pub, events.New(events.CommentCreated, actor.ID, issue.ProjectID, comment.ID))
	return &comment, nil
}

func (s *CommentService) Get(ctx context.Context, actor *models.User, projectID, issueID, commentID uuid.UUID) (*models.Comment, error) {
	return s.scope.Comment(ctx, actor, projectID, issueID, commentID)
}

func (s *CommentService) List(ctx context.Context, actor *models.User, projectID, issueID uuid.UUID) ([]models.Comment, error) {
	return s.scope.Comments(ctx, actor, projectID, issueID)
}

func (s *CommentService) Update(ctx context.Context, actor *models.User, projectID, issueID, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.scope.Comment(ctx, actor, projectID, issueID, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Authorize(ctx, actor, access.ActionUpdate, comment); err != nil {
		return nil, err
	}

	if req.Description != nil {
		comment.Description = strings.TrimSpace(*req.Description)
	}
	if err := validateComment(comment); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(comment).
		Select("Description", "UpdatedAt").
		Updates(comment).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	publish(ctx, s.pub, events.New(events.CommentUpdated, actor.ID, comment.Issue.ProjectID, comment.ID))
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actor *models.User, projectID, issueID, commentID uuid.UUID) error {
	comment, err := s.scope.Comment(ctx, actor, projectID, issueID, commentID)
	if err != nil {
		return err
	}
	if err := s.engine.Authorize(ctx, actor, access.ActionDelete, comment); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Comment{ID: comment.ID}).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	publish(ctx, s.pub, events.New(events.CommentDeleted, actor.ID, comment.Issue.ProjectID, comment.ID))
	return nil
}

func validateComment(c *models.Comment) error {
	if c.Description == "" || len(c.Description) > maxDescriptionLength {
		return invalid("description is required and must be at most %d characters", maxDescriptionLength)
	}
	return nil
}
