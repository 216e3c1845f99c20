package notify

import (
	"context"
	"fmt"
	"time"

	notificationRepo "servitech/database/repository/notification"
	"servitech/models"
	"servitech/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultNotificationService persists notifications and enqueues their
// delivery. The row is the source of truth: a failed enqueue is logged and the
// notification stays visible in the user's list with sent=false.
type DefaultNotificationService struct {
	Repo  notificationRepo.NotificationRepository
	Queue *asynq.Client
}

var _ Service = (*DefaultNotificationService)(nil)

func (s *DefaultNotificationService) Notify(ctx context.Context, userID, message string) error {
	if userID == "" || message == "" {
		return fmt.Errorf("notification requires a user and a message")
	}
	notif := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to persist notification: %w", err)
	}

	if s.Queue == nil {
		return nil
	}
	task, err := NewDeliveryTask(notif.ID, userID)
	if err != nil {
		utils.GetLogger().Error("failed to build delivery task",
			zap.String("notificationId", notif.ID),
			zap.Error(err))
		return nil
	}
	if _, err := s.Queue.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err != nil {
		utils.GetLogger().Error("failed to enqueue notification delivery",
			zap.String("notificationId", notif.ID),
			zap.Error(err))
	}
	return nil
}

func (s *DefaultNotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	notifs, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifs, nil
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.Repo.MarkRead(ctx, userID, ids); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (s *DefaultNotificationService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
