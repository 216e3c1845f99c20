package notificationRepo

import (
	"context"
	"errors"

	"servitech/models"
)

// ErrNotFound indicates the referenced notification does not exist (or does
// not belong to the caller).
var ErrNotFound = errors.New("notification not found")

// NotificationRepository defines data access for user notifications.
type NotificationRepository interface {
	// Create inserts a new notification row.
	Create(ctx context.Context, notif *models.Notification) error
	// GetByID retrieves a notification by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	// ListByUser retrieves a user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	// MarkRead flags the given notifications as read, scoped to the owner.
	MarkRead(ctx context.Context, userID string, ids []string) error
	// MarkSent flags a notification as delivered.
	MarkSent(ctx context.Context, id string) error
	// Delete removes one of the user's notifications.
	Delete(ctx context.Context, userID, id string) error
}
