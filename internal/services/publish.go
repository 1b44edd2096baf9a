package services

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/events"
)

// publish sends an event after its transaction has committed. Failures are
// logged and never surface to the caller.
func publish(ctx context.Context, pub events.Publisher, event events.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "event publish failed",
			"action", event.Type,
			"actor_id", event.ActorID.String(),
			"project_id", event.ProjectID.String(),
			"error", err,
		)
	}
}
