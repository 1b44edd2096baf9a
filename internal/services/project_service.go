package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/events"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxNameLength        = 50
	maxDescriptionLength = 1200
)

type ProjectService struct {
	db     *gorm.DB
	engine *access.Engine
	scope  *Scope
	pub    events.Publisher
}

func NewProjectService(db *gorm.DB, engine *access.Engine, scope *Scope, pub events.Publisher) *ProjectService {
	return &ProjectService{db: db, engine: engine, scope: scope, pub: pub}
}

// Create stores a project authored by actor together with its AUTHOR
// membership. Both rows commit or neither does.
func (s *ProjectService) Create(ctx context.Context, actor *models.User, req *dto.CreateProjectRequest) (*models.Project, error) {
	if actor == nil {
		return nil, access.ErrNotAuthenticated
	}

	project := models.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Type:        req.Type,
		AuthorID:    actor.ID,
	}
	if err := validateProject(&project); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Memberships", "Issues").Create(&project).Error; err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		membership := models.Membership{
			UserID:    actor.ID,
			ProjectID: project.ID,
			Role:      models.RoleAuthor,
		}
		if err := tx.Omit("User", "Project").Create(&membership).Error; err != nil {
			return fmt.Errorf("failed to create author membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.pub, events.New(events.ProjectCreated, actor.ID, project.ID, project.ID))
	return &project, nil
}

func (s *ProjectService) Get(ctx context.Context, actor *models.User, projectID uuid.UUID) (*models.Project, error) {
	return s.scope.Project(ctx, actor, projectID)
}

func (s *ProjectService) List(ctx context.Context, actor *models.User) ([]models.Project, error) {
	return s.scope.Projects(ctx, actor)
}

// Update changes name, description or type. The author never changes.
func (s *ProjectService) Update(ctx context.Context, actor *models.User, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.scope.Project(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Authorize(ctx, actor, access.ActionUpdate, project); err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}
	if req.Type != nil {
		project.Type = *req.Type
	}
	if err := validateProject(project); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(project).
		Select("Name", "Description", "Type", "UpdatedAt").
		Updates(project).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	publish(ctx, s.pub, events.New(events.ProjectUpdated, actor.ID, project.ID, project.ID))
	return project, nil
}

// Delete removes the project with its memberships, issues, assignments and
// comments in one transaction.
func (s *ProjectService) Delete(ctx context.Context, actor *models.User, projectID uuid.UUID) error {
	project, err := s.scope.Project(ctx, actor, projectID)
	if err != nil {
		return err
	}
	if err := s.engine.Authorize(ctx, actor, access.ActionDelete, project); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var issueIDs []uuid.UUID
		if err := tx.Model(&models.Issue{}).Scopes(access.InProject(project.ID)).Pluck("id", &issueIDs).Error; err != nil {
			return err
		}
		if len(issueIDs) > 0 {
			if err := tx.Where("issue_id IN ?", issueIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("issue_id IN ?", issueIDs).Delete(&models.IssueAssignee{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Scopes(access.InProject(project.ID)).Delete(&models.Issue{}).Error; err != nil {
			return err
		}
		if err := tx.Scopes(access.InProject(project.ID)).Delete(&models.Membership{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	publish(ctx, s.pub, events.New(events.ProjectDeleted, actor.ID, project.ID, project.ID))
	return nil
}

func (s *ProjectService) Contributors(ctx context.Context, actor *models.User, projectID uuid.UUID) ([]models.Membership, error) {
	return s.scope.Contributors(ctx, actor, projectID)
}

// AddContributor gives userID a CONTRIBUTOR membership. The unique
// (user, project) index settles concurrent adds.
func (s *ProjectService) AddContributor(ctx context.Context, actor *models.User, projectID uuid.UUID, req *dto.ContributorRequest) (*models.Membership, error) {
	project, err := s.scope.Project(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.AuthorizeAddContributor(ctx, actor, project, req.UserID); err != nil {
		return nil, err
	}

	var user models.User
	err = s.db.WithContext(ctx).Where("id = ?", req.UserID).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, access.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	membership := models.Membership{
		UserID:    user.ID,
		ProjectID: project.ID,
		Role:      models.RoleContributor,
	}
	if err := s.db.WithContext(ctx).Omit("User", "Project").Create(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, access.ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to add contributor: %w", err)
	}
	membership.User = user

	publish(ctx, s.pub, events.New(events.ContributorAdded, actor.ID, project.ID, user.ID))
	return &membership, nil
}

// RemoveContributor deletes the membership of userID and drops the user from
// every issue assignment in the project.
func (s *ProjectService) RemoveContributor(ctx context.Context, actor *models.User, projectID uuid.UUID, req *dto.ContributorRequest) error {
	if actor == nil {
		return access.ErrNotAuthenticated
	}

	project, err := s.scope.findProject(ctx, projectID)
	if err != nil {
		return err
	}

	var membership models.Membership
	err = s.db.WithContext(ctx).
		Scopes(access.InProject(project.ID)).
		Where("user_id = ?", req.UserID).
		Take(&membership).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to load membership: %w", err)
	}
	found := err == nil

	var target *models.Membership
	if found {
		target = &membership
	}
	if err := s.engine.AuthorizeRemoveContributor(ctx, actor, project, target); err != nil {
		return err
	}
	if !found {
		return access.ErrNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var issueIDs []uuid.UUID
		if err := tx.Model(&models.Issue{}).Scopes(access.InProject(project.ID)).Pluck("id", &issueIDs).Error; err != nil {
			return err
		}
		if len(issueIDs) > 0 {
			if err := tx.Where("user_id = ? AND issue_id IN ?", membership.UserID, issueIDs).Delete(&models.IssueAssignee{}).Error; err != nil {
				return err
			}
		}
		result := tx.Where("id = ? AND role = ?", membership.ID, models.RoleContributor).Delete(&models.Membership{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return access.ErrNotFound
		}
		return nil
	})
	if errors.Is(err, access.ErrNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to remove contributor: %w", err)
	}

	publish(ctx, s.pub, events.New(events.ContributorRemoved, actor.ID, project.ID, membership.UserID))
	return nil
}

func validateProject(p *models.Project) error {
	if p.Name == "" || len(p.Name) > maxNameLength {
		return invalid("name is required and must be at most %d characters", maxNameLength)
	}
	if len(p.Description) > maxDescriptionLength {
		return invalid("description must be at most %d characters", maxDescriptionLength)
	}
	if !p.Type.Valid() {
		return invalid("type must be one of back-end, front-end, iOS, Android")
	}
	return nil
}
