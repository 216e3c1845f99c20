package notify

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TypeDeliverNotification identifies the background delivery task.
const TypeDeliverNotification = "notification:deliver"

// DeliveryPayload is the asynq task payload for a pending delivery.
type DeliveryPayload struct {
	NotificationID string `json:"notificationId"`
	UserID         string `json:"userId"`
}

// NewDeliveryTask builds the asynq task that delivers a persisted
// notification.
func NewDeliveryTask(notificationID, userID string) (*asynq.Task, error) {
	payload, err := json.Marshal(DeliveryPayload{
		NotificationID: notificationID,
		UserID:         userID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDeliverNotification, payload), nil
}
