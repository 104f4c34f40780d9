// Package service holds the business rules that span repositories: cascades,
// reference cleanup, link warnings and event publication.
package service

import (
	"context"

	"socialnet/internal/middleware"
	"socialnet/internal/models"
	"socialnet/internal/notifications"
	"socialnet/internal/observability"
)

// EventPublisher delivers domain events to stream subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, ev notifications.Event) error
}

func publish(ctx context.Context, pub EventPublisher, ev notifications.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, ev); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish event", "type", ev.Type, "error", err)
	}
}

// cleanupFailed records a secondary update that did not apply after the primary
// write succeeded and returns the message to surface as the response warning.
func cleanupFailed(ctx context.Context, operation string, err *models.AppError) string {
	observability.RecordCleanupFailure(operation)
	middleware.Logger.WarnContext(ctx, "reference cleanup failed",
		"operation", operation, "code", err.Code, "error", err.Err)
	return err.Message
}
