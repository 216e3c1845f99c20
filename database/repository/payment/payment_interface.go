package paymentRepo

import (
	"context"
	"errors"

	"servitech/models"
)

// ErrRequestConflict indicates the settled request was not in the expected
// state when the settlement transaction ran.
var ErrRequestConflict = errors.New("service request not settleable")

// PaymentRepository defines data access for payments, including the
// settlement transaction that closes a service request.
type PaymentRepository interface {
	// Settle runs the full settlement sequence in one transaction: insert the
	// payment as pending, append the completion progress event, flip the
	// request to completed, flip the payment to completed, insert the customer
	// notification. Either all five writes land or none do.
	Settle(ctx context.Context, payment *models.Payment, event *models.ProgressEvent, notif *models.Notification) error
	// GetByRequestID retrieves the payment recorded for a request, or nil when absent.
	GetByRequestID(ctx context.Context, requestID string) (*models.Payment, error)
	// ListCompletedByTechnician retrieves completed payments for requests the
	// technician carried out, newest first.
	ListCompletedByTechnician(ctx context.Context, technicianID string) ([]models.Payment, error)
}
