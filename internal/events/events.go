package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	ProjectCreated     = "project.created"
	ProjectUpdated     = "project.updated"
	ProjectDeleted     = "project.deleted"
	ContributorAdded   = "contributor.added"
	ContributorRemoved = "contributor.removed"
	IssueCreated       = "issue.created"
	IssueUpdated       = "issue.updated"
	IssueDeleted       = "issue.deleted"
	CommentCreated     = "comment.created"
	CommentUpdated     = "comment.updated"
	CommentDeleted     = "comment.deleted"
)

// Event describes a committed change. ResourceID is the project, issue,
// comment or user the change is about.
type Event struct {
	Type       string    `json:"type"`
	ActorID    uuid.UUID `json:"actor_id"`
	ProjectID  uuid.UUID `json:"project_id"`
	ResourceID uuid.UUID `json:"resource_id"`
	At         time.Time `json:"at"`
}

func New(eventType string, actorID, projectID, resourceID uuid.UUID) Event {
	return Event{
		Type:       eventType,
		ActorID:    actorID,
		ProjectID:  projectID,
		ResourceID: resourceID,
		At:         time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the type of every recorded event, in order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
