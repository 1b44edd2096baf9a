package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resolver answers membership questions from the membership table. It holds no
// state besides the database handle; every answer is read fresh.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// IsMember is true iff a membership row exists for (userID, projectID),
// whether or not the user is the project's author.
func (r *Resolver) IsMember(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	role, err := r.RoleOf(ctx, userID, projectID)
	if err != nil {
		return false, err
	}
	return role != "", nil
}

// RoleOf returns the user's role in the project, or "" when there is none.
func (r *Resolver) RoleOf(ctx context.Context, userID, projectID uuid.UUID) (models.Role, error) {
	if userID == uuid.Nil || projectID == uuid.Nil {
		return "", nil
	}

	var membership models.Membership
	err := r.db.WithContext(ctx).
		Select("role").
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Take(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("resolving role: %w", err)
	}
	return membership.Role, nil
}

// MembersOf returns every user holding a membership in the project.
func (r *Resolver) MembersOf(ctx context.Context, projectID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN memberships ON memberships.user_id = users.id").
		Where("memberships.project_id = ?", projectID).
		Order("memberships.created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return users, nil
}

// ProjectsOf returns every project the user holds any membership in.
func (r *Resolver) ProjectsOf(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Scopes(MemberOf(userID)).
		Order("projects.created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// ProjectOfIssue walks issue -> project.
func (r *Resolver) ProjectOfIssue(ctx context.Context, issueID uuid.UUID) (uuid.UUID, error) {
	var issue models.Issue
	err := r.db.WithContext(ctx).Select("project_id").Where("id = ?", issueID).Take(&issue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, ErrNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolving issue project: %w", err)
	}
	return issue.ProjectID, nil
}

// ProjectOfComment walks comment -> issue -> project.
func (r *Resolver) ProjectOfComment(ctx context.Context, commentID uuid.UUID) (uuid.UUID, error) {
	var projectIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Joins("JOIN issues ON issues.id = comments.issue_id").
		Where("comments.id = ?", commentID).
		Limit(1).
		Pluck("issues.project_id", &projectIDs).Error
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolving comment project: %w", err)
	}
	if len(projectIDs) == 0 {
		return uuid.Nil, ErrNotFound
	}
	return projectIDs[0], nil
}
