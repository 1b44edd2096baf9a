package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope resolves hierarchical paths (project, issue, comment) for an actor and
// returns the collections the actor may see. Ownership always comes from the
// path: a child id that exists under another project is reported as
// access.ErrNotFound.
type Scope struct {
	db     *gorm.DB
	engine *access.Engine
}

func NewScope(db *gorm.DB, engine *access.Engine) *Scope {
	return &Scope{db: db, engine: engine}
}

// Project returns the project if actor may read it.
func (s *Scope) Project(ctx context.Context, actor *models.User, projectID uuid.UUID) (*models.Project, error) {
	return s.project(ctx, actor, projectID, access.ActionRead)
}

// Issue returns the issue at /projects/{projectID}/issues/{issueID}.
func (s *Scope) Issue(ctx context.Context, actor *models.User, projectID, issueID uuid.UUID) (*models.Issue, error) {
	if _, err := s.Project(ctx, actor, projectID); err != nil {
		return nil, err
	}
	issue, err := s.findIssue(ctx, projectID, issueID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Authorize(ctx, actor, access.ActionRead, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// Comment returns the comment at /projects/{projectID}/issues/{issueID}/comments/{commentID}.
func (s *Scope) Comment(ctx context.Context, actor *models.User, projectID, issueID, commentID uuid.UUID) (*models.Comment, error) {
	issue, err := s.Issue(ctx, actor, projectID, issueID)
	if err != nil {
		return nil, err
	}

	var comment models.Comment
	err = s.db.WithContext(ctx).
		Scopes(access.OnIssue(issue.ID)).
		Where("id = ?", commentID).
		Take(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, access.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	comment.Issue = *issue

	if err := s.engine.Authorize(ctx, actor, access.ActionRead, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Projects lists every project the actor is a member of.
func (s *Scope) Projects(ctx context.Context, actor *models.User) ([]models.Project, error) {
	if actor == nil {
		return nil, access.ErrNotAuthenticated
	}
	return s.engine.Resolver().ProjectsOf(ctx, actor.ID)
}

// Issues lists the issues of a project.
func (s *Scope) Issues(ctx context.Context, actor *models.User, projectID uuid.UUID) ([]models.Issue, error) {
	project, err := s.collection(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	var issues []models.Issue
	err = s.db.WithContext(ctx).
		Scopes(access.InProject(project.ID)).
		Preload("AssignedUsers").
		Order("created_at DESC").
		Find(&issues).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	return issues, nil
}

// Comments lists the comments of an issue.
func (s *Scope) Comments(ctx context.Context, actor *models.User, projectID, issueID uuid.UUID) ([]models.Comment, error) {
	project, err := s.collection(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	issue, err := s.findIssue(ctx, project.ID, issueID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Authorize(ctx, actor, access.ActionList, issue); err != nil {
		return nil, listDenial(err)
	}

	var comments []models.Comment
	err = s.db.WithContext(ctx).
		Scopes(access.OnIssue(issue.ID)).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// Contributors lists the memberships of a project. Any member may see them.
func (s *Scope) Contributors(ctx context.Context, actor *models.User, projectID uuid.UUID) ([]models.Membership, error) {
	project, err := s.collection(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	var memberships []models.Membership
	err = s.db.WithContext(ctx).
		Scopes(access.InProject(project.ID)).
		Preload("User").
		Order("created_at ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}
	return memberships, nil
}

func (s *Scope) project(ctx context.Context, actor *models.User, projectID uuid.UUID, action access.Action) (*models.Project, error) {
	if actor == nil {
		return nil, access.ErrNotAuthenticated
	}

	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Authorize(ctx, actor, action, project); err != nil {
		return nil, err
	}
	return project, nil
}

// collection gates a nested list. Non-members get the same answer as for a
// project that does not exist.
func (s *Scope) collection(ctx context.Context, actor *models.User, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.project(ctx, actor, projectID, access.ActionList)
	if err != nil {
		return nil, listDenial(err)
	}
	return project, nil
}

func (s *Scope) findProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Where("id = ?", projectID).Take(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, access.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return &project, nil
}

func (s *Scope) findIssue(ctx context.Context, projectID, issueID uuid.UUID) (*models.Issue, error) {
	var issue models.Issue
	err := s.db.WithContext(ctx).
		Scopes(access.InProject(projectID)).
		Where("id = ?", issueID).
		Preload("AssignedUsers").
		Take(&issue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, access.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load issue: %w", err)
	}
	return &issue, nil
}

func listDenial(err error) error {
	if errors.Is(err, access.ErrNotAContributor) {
		return access.ErrNotFound
	}
	return err
}
