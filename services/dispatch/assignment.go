package dispatch

import (
	"context"
	"errors"
	"fmt"

	requestRepo "servitech/database/repository/request"
	"servitech/models"
	"servitech/utils"

	"go.uber.org/zap"
)

// Claim assigns a pending request to a technician. The capacity check and the
// status flip run as one conditional transaction in the store, so concurrent
// claims on the same request produce exactly one Assignment; losers get a
// conflict, not an internal error.
func (s *DefaultDispatchService) Claim(ctx context.Context, requestID, technicianID string) (*Assignment, error) {
	if technicianID == "" {
		return nil, newError(CodeAuth, "technician identity is required")
	}
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusPending {
		return nil, newError(CodeConflict, "request %s has already been claimed", requestID)
	}

	capacity, err := s.Requests.Capacity(ctx, technicianID, s.DefaultCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve technician capacity: %w", err)
	}

	code, err := utils.GenerateConfirmationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate confirmation code: %w", err)
	}

	if err := s.Requests.Claim(ctx, requestID, technicianID, code, capacity.MaxConcurrent); err != nil {
		switch {
		case errors.Is(err, requestRepo.ErrCapacityReached):
			return nil, newError(CodeConflict, "technician has reached the assignment limit of %d", capacity.MaxConcurrent)
		case errors.Is(err, requestRepo.ErrNotPending):
			return nil, newError(CodeConflict, "request %s has already been claimed", requestID)
		default:
			return nil, fmt.Errorf("failed to claim request: %w", err)
		}
	}

	message := fmt.Sprintf("Un tecnico ha aceptado tu solicitud. Codigo de confirmacion: %s", code)
	if err := s.Notifier.Notify(ctx, req.CustomerID, message); err != nil {
		utils.GetLogger().Error("failed to notify customer of assignment",
			zap.String("requestId", requestID),
			zap.Error(err))
	}

	return &Assignment{
		RequestID:        requestID,
		TechnicianID:     technicianID,
		ConfirmationCode: code,
	}, nil
}

// CancelByTechnician releases an assigned request before any work has been
// recorded. Once a progress event exists the technician can no longer cancel
// through this path.
func (s *DefaultDispatchService) CancelByTechnician(ctx context.Context, requestID, technicianID string) error {
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.TechnicianID != technicianID {
		return newError(CodeForbidden, "request %s is not assigned to this technician", requestID)
	}

	count, err := s.Events.CountByRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to check progress: %w", err)
	}
	if count > 0 {
		return newError(CodeConflict, "request %s cannot be cancelled once work has started", requestID)
	}

	if err := s.Requests.CancelByTechnician(ctx, requestID, technicianID); err != nil {
		if errors.Is(err, requestRepo.ErrStatusConflict) {
			return newError(CodeConflict, "request %s is not cancellable", requestID)
		}
		return fmt.Errorf("failed to cancel request: %w", err)
	}
	return nil
}

// CancelByCustomer cancels the customer's own request, allowed only while no
// technician progress has been recorded.
func (s *DefaultDispatchService) CancelByCustomer(ctx context.Context, requestID, customerID string) error {
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.CustomerID != customerID {
		return newError(CodeForbidden, "request %s does not belong to this customer", requestID)
	}

	count, err := s.Events.CountByRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to check progress: %w", err)
	}
	if count > 0 {
		return newError(CodeConflict, "request %s cannot be cancelled: the technician is already on the way", requestID)
	}

	if err := s.Requests.CancelByCustomer(ctx, requestID, customerID); err != nil {
		if errors.Is(err, requestRepo.ErrStatusConflict) {
			return newError(CodeConflict, "request %s is not cancellable", requestID)
		}
		return fmt.Errorf("failed to cancel request: %w", err)
	}
	return nil
}

// ListAvailable returns pending requests in insertion order.
func (s *DefaultDispatchService) ListAvailable(ctx context.Context) ([]models.ServiceRequest, error) {
	reqs, err := s.Requests.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return reqs, nil
}

// ListAssigned returns the technician's active assignments.
func (s *DefaultDispatchService) ListAssigned(ctx context.Context, technicianID string) ([]models.ServiceRequest, error) {
	reqs, err := s.Requests.ListByTechnician(ctx, technicianID, models.StatusAssigned)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned requests: %w", err)
	}
	return reqs, nil
}

// CompletedByTechnician returns the technician's completed service history.
func (s *DefaultDispatchService) CompletedByTechnician(ctx context.Context, technicianID string) ([]models.ServiceRequest, error) {
	reqs, err := s.Requests.ListByTechnician(ctx, technicianID, models.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed requests: %w", err)
	}
	return reqs, nil
}
