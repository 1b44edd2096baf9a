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
	"gorm.io/gorm/clause"
)

type IssueService struct {
	db     *gorm.DB
	engine *access.Engine
	scope  *Scope
	pub    events.Publisher
}

func NewIssueService(db *gorm.DB, engine *access.Engine, scope *Scope, pub events.Publisher) *IssueService {
	return &IssueService{db: db, engine: engine, scope: scope, pub: pub}
}

// Create adds an issue under projectID. The project comes from the path and
// every assignee must already be a member of it.
func (s *IssueService) Create(ctx context.Context, actor *models.User, projectID uuid.UUID, req *dto.CreateIssueRequest) (*models.Issue, error) {
	project, err := s.scope.Project(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Authorize(ctx, actor, access.ActionCreate, project); err != nil {
		return nil, err
	}

	issue := models.Issue{
		Name:      strings.TrimSpace(req.Name),
		Type:      req.Type,
		Level:     req.Level,
		Status:    req.Status,
		AuthorID:  actor.ID,
		ProjectID: project.ID,
	}
	if issue.Status == "" {
		issue.Status = models.IssueStatusToDo
	}
	if err := validateIssue(&issue); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&issue).Error; err != nil {
			return fmt.Errorf("failed to create issue: %w", err)
		}
		return assign(tx, &issue, req.AssignedUsers)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.reload(ctx, issue.ID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.pub, events.New(events.IssueCreated, actor.ID, project.ID, issue.ID))
	return created, nil
}

func (s *IssueService) Get(ctx context.Context, actor *models.User, projectID, issueID uuid.UUID) (*models.Issue, error) {
	return s.scope.Issue(ctx, actor, projectID, issueID)
}

func (s *IssueService) List(ctx context.Context, actor *models.User, projectID uuid.UUID) ([]models.Issue, error) {
	return s.scope.Issues(ctx, actor, projectID)
}

// Update changes the issue's fields. A non-nil AssignedUsers replaces the whole
// assignee set.
func (s *IssueService) Update(ctx context.Context, actor *models.User, projectID, issueID uuid.UUID, req *dto.UpdateIssueRequest) (*models.Issue, error) {
	issue, err := s.scope.Issue(ctx, actor, projectID, issueID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Authorize(ctx, actor, access.ActionUpdate, issue); err != nil {
		return nil, err
	}

	if req.Name != nil {
		issue.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		issue.Type = *req.Type
	}
	if req.Level != nil {
		issue.Level = *req.Level
	}
	if req.Status != nil {
		issue.Status = *req.Status
	}
	if err := validateIssue(issue); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(issue).
			Select("Name", "Type", "Level", "Status", "UpdatedAt").
			Updates(issue).Error
		if err != nil {
			return fmt.Errorf("failed to update issue: %w", err)
		}
		if req.AssignedUsers == nil {
			return nil
		}
		if err := tx.Where("issue_id = ?", issue.ID).Delete(&models.IssueAssignee{}).Error; err != nil {
			return fmt.Errorf("failed to clear assignees: %w", err)
		}
		return assign(tx, issue, *req.AssignedUsers)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.reload(ctx, issue.ID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.pub, events.New(events.IssueUpdated, actor.ID, issue.ProjectID, issue.ID))
	return updated, nil
}

// Delete removes the issue with its comments and assignments.
func (s *IssueService) Delete(ctx context.Context, actor *models.User, projectID, issueID uuid.UUID) error {
	issue, err := s.scope.Issue(ctx, actor, projectID, issueID)
	if err != nil {
		return err
	}
	if err := s.engine.Authorize(ctx, actor, access.ActionDelete, issue); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(access.OnIssue(issue.ID)).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Scopes(access.OnIssue(issue.ID)).Delete(&models.IssueAssignee{}).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Delete(&models.Issue{ID: issue.ID}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}

	publish(ctx, s.pub, events.New(events.IssueDeleted, actor.ID, issue.ProjectID, issue.ID))
	return nil
}

func (s *IssueService) reload(ctx context.Context, issueID uuid.UUID) (*models.Issue, error) {
	var issue models.Issue
	err := s.db.WithContext(ctx).Preload("AssignedUsers").Where("id = ?", issueID).Take(&issue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load issue: %w", err)
	}
	return &issue, nil
}

// assign writes the assignee rows for issue. Every user must hold a membership
// in the issue's project, otherwise nothing is written and the whole operation
// fails.
func assign(tx *gorm.DB, issue *models.Issue, userIDs []uuid.UUID) error {
	ids := dedupe(userIDs)
	if len(ids) == 0 {
		return nil
	}

	var members []uuid.UUID
	err := tx.Model(&models.Membership{}).
		Scopes(access.InProject(issue.ProjectID)).
		Where("user_id IN ?", ids).
		Pluck("user_id", &members).Error
	if err != nil {
		return fmt.Errorf("failed to check assignees: %w", err)
	}

	isMember := make(map[uuid.UUID]bool, len(members))
	for _, id := range members {
		isMember[id] = true
	}
	rows := make([]models.IssueAssignee, 0, len(ids))
	for _, id := range ids {
		if !isMember[id] {
			return invalid("user %s is not a contributor of this project", id)
		}
		rows = append(rows, models.IssueAssignee{IssueID: issue.ID, UserID: id})
	}

	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to assign users: %w", err)
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func validateIssue(i *models.Issue) error {
	if i.Name == "" || len(i.Name) > maxNameLength {
		return invalid("name is required and must be at most %d characters", maxNameLength)
	}
	if !i.Type.Valid() {
		return invalid("type must be one of BUG, FEATURE, TASK")
	}
	if !i.Level.Valid() {
		return invalid("level must be one of LOW, MEDIUM, HIGH")
	}
	if !i.Status.Valid() {
		return invalid("status must be one of ToDo, InProgress, Finished")
	}
	return nil
}
