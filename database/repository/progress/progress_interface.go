package progressRepo

import (
	"context"

	"servitech/models"
)

// ProgressRepository defines data access for the append-only progress log.
// The latest event for a request is the authoritative current lifecycle state;
// nothing here ever mutates or removes an event.
type ProgressRepository interface {
	// Append inserts a new progress event.
	Append(ctx context.Context, event *models.ProgressEvent) error
	// Latest retrieves the most recent event for a request, or nil when the
	// request has no recorded progress yet.
	Latest(ctx context.Context, requestID string) (*models.ProgressEvent, error)
	// ListByRequest retrieves all events for a request in insertion order.
	ListByRequest(ctx context.Context, requestID string) ([]models.ProgressEvent, error)
	// CountByRequest counts the events recorded for a request.
	CountByRequest(ctx context.Context, requestID string) (int64, error)
}
