package notify

import (
	"context"

	"servitech/models"
)

// Service persists user notifications and hands delivery off to the
// background worker.
type Service interface {
	// Notify records a notification for the user and enqueues its delivery.
	Notify(ctx context.Context, userID, message string) error
	// List returns the user's notifications, newest first.
	List(ctx context.Context, userID string) ([]models.Notification, error)
	// MarkRead flags the given notifications as read.
	MarkRead(ctx context.Context, userID string, ids []string) error
	// Delete removes one of the user's notifications.
	Delete(ctx context.Context, userID, id string) error
}
