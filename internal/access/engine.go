package access

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	"github.com/google/uuid"
)

// Action is an operation an actor attempts on a resource or collection.
type Action string

const (
	ActionList             Action = "list"
	ActionRead             Action = "read"
	ActionCreate           Action = "create"
	ActionUpdate           Action = "update"
	ActionDelete           Action = "delete"
	ActionManageMembership Action = "manage-membership"
)

// Resource is anything placed in the Project -> Issue -> Comment hierarchy.
// For create and list the target is the parent (the project for issues, the
// issue for comments).
type Resource interface {
	OwnerProjectID() uuid.UUID
	AuthorUserID() uuid.UUID
}

// Engine decides whether an actor may perform an action. Decisions are
// computed from the Resolver on every call.
//
// Checks run in a fixed order: authentication, membership, then authorship or
// role. A non-member always gets ErrNotAContributor, never a hint about
// authorship.
type Engine struct {
	resolver *Resolver
	logger   *slog.Logger
}

func NewEngine(resolver *Resolver) *Engine {
	return &Engine{
		resolver: resolver,
		logger:   slog.Default().With("component", "access"),
	}
}

func (e *Engine) Resolver() *Resolver { return e.resolver }

// Authorize returns nil when actor may perform action on target, or one of the
// package's denial errors.
func (e *Engine) Authorize(ctx context.Context, actor *models.User, action Action, target Resource) error {
	if actor == nil {
		return e.deny(ctx, nil, action, target, ErrNotAuthenticated)
	}

	role, err := e.resolver.RoleOf(ctx, actor.ID, target.OwnerProjectID())
	if err != nil {
		return err
	}
	if role == "" {
		return e.deny(ctx, actor, action, target, ErrNotAContributor)
	}

	switch action {
	case ActionList, ActionRead, ActionCreate:
		return nil
	case ActionUpdate, ActionDelete:
		if target.AuthorUserID() != actor.ID {
			return e.deny(ctx, actor, action, target, ErrNotOwner)
		}
		return nil
	case ActionManageMembership:
		if role != models.RoleAuthor {
			return e.deny(ctx, actor, action, target, ErrNotOwner)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

// AuthorizeAddContributor checks that actor may add userID to project.
func (e *Engine) AuthorizeAddContributor(ctx context.Context, actor *models.User, project *models.Project, userID uuid.UUID) error {
	if err := e.Authorize(ctx, actor, ActionManageMembership, project); err != nil {
		return err
	}

	member, err := e.resolver.IsMember(ctx, userID, project.ID)
	if err != nil {
		return err
	}
	if member {
		return e.deny(ctx, actor, ActionManageMembership, project, ErrAlreadyMember)
	}
	return nil
}

// AuthorizeRemoveContributor checks that actor may delete target from project.
// An AUTHOR membership is never removable, whoever asks.
func (e *Engine) AuthorizeRemoveContributor(ctx context.Context, actor *models.User, project *models.Project, target *models.Membership) error {
	if actor == nil {
		return e.deny(ctx, nil, ActionManageMembership, project, ErrNotAuthenticated)
	}
	if target != nil && target.Role == models.RoleAuthor {
		return e.deny(ctx, actor, ActionManageMembership, project, ErrCannotRemoveOwner)
	}
	return e.Authorize(ctx, actor, ActionManageMembership, project)
}

func (e *Engine) deny(ctx context.Context, actor *models.User, action Action, target Resource, reason error) error {
	attrs := []any{"action", string(action), "reason", reason.Error()}
	if actor != nil {
		attrs = append(attrs, "actor_id", actor.ID.String())
	}
	if target != nil {
		attrs = append(attrs, "project_id", target.OwnerProjectID().String())
	}
	e.logger.WarnContext(ctx, "access denied", attrs...)
	return reason
}
