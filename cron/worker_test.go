package cron

import (
	"context"
	"encoding/json"
	"testing"

	notificationRepo "servitech/database/repository/notification"
	"servitech/models"
	"servitech/services/notify"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotificationRepo struct {
	rows map[string]*models.Notification
}

func (s *stubNotificationRepo) Create(ctx context.Context, notif *models.Notification) error {
	s.rows[notif.ID] = notif
	return nil
}

func (s *stubNotificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	n, ok := s.rows[id]
	if !ok {
		return nil, notificationRepo.ErrNotFound
	}
	return n, nil
}

func (s *stubNotificationRepo) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return nil, nil
}

func (s *stubNotificationRepo) MarkRead(ctx context.Context, userID string, ids []string) error {
	return nil
}

func (s *stubNotificationRepo) MarkSent(ctx context.Context, id string) error {
	n, ok := s.rows[id]
	if !ok {
		return notificationRepo.ErrNotFound
	}
	n.Sent = true
	return nil
}

func (s *stubNotificationRepo) Delete(ctx context.Context, userID, id string) error {
	return nil
}

func deliveryTask(t *testing.T, notificationID, userID string) *asynq.Task {
	t.Helper()
	task, err := notify.NewDeliveryTask(notificationID, userID)
	require.NoError(t, err)
	return task
}

func TestHandleDeliveryTaskMarksSent(t *testing.T) {
	repo := &stubNotificationRepo{rows: map[string]*models.Notification{
		"n-1": {ID: "n-1", UserID: "cust-1", Message: "hola"},
	}}
	handler := handleDeliveryTask(repo)

	err := handler(context.Background(), deliveryTask(t, "n-1", "cust-1"))
	require.NoError(t, err)
	assert.True(t, repo.rows["n-1"].Sent)
}

func TestHandleDeliveryTaskAlreadySentIsNoop(t *testing.T) {
	repo := &stubNotificationRepo{rows: map[string]*models.Notification{
		"n-1": {ID: "n-1", UserID: "cust-1", Sent: true},
	}}
	handler := handleDeliveryTask(repo)

	err := handler(context.Background(), deliveryTask(t, "n-1", "cust-1"))
	require.NoError(t, err)
}

func TestHandleDeliveryTaskMissingRowErrorsForRetry(t *testing.T) {
	repo := &stubNotificationRepo{rows: map[string]*models.Notification{}}
	handler := handleDeliveryTask(repo)

	err := handler(context.Background(), deliveryTask(t, "n-missing", "cust-1"))
	require.Error(t, err)
}

func TestHandleDeliveryTaskRejectsBadPayload(t *testing.T) {
	repo := &stubNotificationRepo{rows: map[string]*models.Notification{}}
	handler := handleDeliveryTask(repo)

	bad := asynq.NewTask(notify.TypeDeliverNotification, []byte("{not json"))
	err := handler(context.Background(), bad)
	require.Error(t, err)

	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}
