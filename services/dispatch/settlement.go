package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	paymentRepo "servitech/database/repository/payment"
	"servitech/models"

	"github.com/google/uuid"
)

// Settle converts a finished service into a completed, paid request. The
// latest progress event must be exactly "finalizado"; the full write sequence
// (payment pending, completion event, request completed, payment completed,
// customer notification) is delegated to the store as one transaction so the
// payment and request can never disagree about completion.
func (s *DefaultDispatchService) Settle(ctx context.Context, requestID, customerID, method string, amount float64) (*models.Payment, error) {
	if strings.TrimSpace(method) == "" {
		return nil, newError(CodeValidation, "a payment method is required")
	}
	if amount <= 0 {
		return nil, newError(CodeValidation, "amount must be positive")
	}

	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != customerID {
		return nil, newError(CodeForbidden, "request %s does not belong to this customer", requestID)
	}

	latest, err := s.Events.Latest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to read current state: %w", err)
	}
	if latest == nil || latest.State != models.StateFinished {
		return nil, newError(CodeConflict, "service is not ready for payment")
	}

	payment := &models.Payment{
		ID:        uuid.New().String(),
		RequestID: requestID,
		Amount:    amount,
		Method:    method,
	}
	event := &models.ProgressEvent{
		ID:           uuid.New().String(),
		RequestID:    requestID,
		TechnicianID: req.TechnicianID,
		State:        models.StateCompleted,
		Detail:       "El servicio ha sido pagado y completado.",
	}
	notif := &models.Notification{
		ID:      uuid.New().String(),
		UserID:  customerID,
		Message: "El pago ha sido completado y el servicio se ha marcado como completado.",
	}

	if err := s.Payments.Settle(ctx, payment, event, notif); err != nil {
		if errors.Is(err, paymentRepo.ErrRequestConflict) {
			return nil, newError(CodeConflict, "request %s is not in a settleable state", requestID)
		}
		return nil, fmt.Errorf("failed to settle request: %w", err)
	}
	return payment, nil
}

// PaymentsByTechnician returns completed payments for services the technician
// carried out.
func (s *DefaultDispatchService) PaymentsByTechnician(ctx context.Context, technicianID string) ([]models.Payment, error) {
	payments, err := s.Payments.ListCompletedByTechnician(ctx, technicianID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
