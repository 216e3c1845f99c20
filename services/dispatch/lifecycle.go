package dispatch

import (
	"context"
	"errors"
	"fmt"

	requestRepo "servitech/database/repository/request"
	"servitech/models"
	"servitech/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// lifecycleOrder is the canonical sequence of technician-driven states. The
// implicit pre-state is "no progress recorded yet"; "completado" is appended
// only by settlement and is never a valid Advance target.
var lifecycleOrder = []string{
	models.StateOnTheWay,
	models.StateOnSite,
	models.StateInProgress,
	models.StateFinished,
}

// gatedStates require the confirmation code issued at claim time.
var gatedStates = map[string]bool{
	models.StateInProgress: true,
	models.StateFinished:   true,
}

func lifecycleIndex(state string) int {
	for i, s := range lifecycleOrder {
		if s == state {
			return i
		}
	}
	return -1
}

// Advance moves a request to the next lifecycle state. The transition is
// accepted only when target is the immediate successor of the latest recorded
// state; anything else is rejected without writing. Transitions into
// en_proceso and finalizado additionally require the confirmation code.
func (s *DefaultDispatchService) Advance(ctx context.Context, requestID, technicianID, target, confirmationCode, detail string) (*models.ProgressEvent, error) {
	targetIdx := lifecycleIndex(target)
	if targetIdx == -1 {
		return nil, newError(CodeValidation, "unknown lifecycle state %q", target)
	}

	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusAssigned || req.TechnicianID != technicianID {
		return nil, newError(CodeForbidden, "request %s is not assigned to this technician", requestID)
	}

	if gatedStates[target] {
		if confirmationCode == "" {
			return nil, newError(CodeValidation, "a confirmation code is required for state %q", target)
		}
		if confirmationCode != req.ConfirmationCode {
			return nil, newError(CodeConflict, "incorrect confirmation code")
		}
	}

	latest, err := s.Events.Latest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to read current state: %w", err)
	}
	currentIdx := -1
	if latest != nil {
		currentIdx = lifecycleIndex(latest.State)
	}
	if targetIdx != currentIdx+1 {
		return nil, newError(CodeConflict, "out-of-order transition to %q", target)
	}

	event := &models.ProgressEvent{
		ID:           uuid.New().String(),
		RequestID:    requestID,
		TechnicianID: technicianID,
		State:        target,
		Detail:       detail,
	}
	if err := s.Events.Append(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to record transition: %w", err)
	}

	// The transition stands regardless of what happens to the notification;
	// a failed emission is surfaced in the logs only.
	message := fmt.Sprintf("El estado de tu servicio ha cambiado a: %s.", target)
	if detail != "" {
		message = fmt.Sprintf("%s %s", message, detail)
	}
	if err := s.Notifier.Notify(ctx, req.CustomerID, message); err != nil {
		utils.GetLogger().Error("failed to notify customer of state change",
			zap.String("requestId", requestID),
			zap.String("state", target),
			zap.Error(err))
	}

	return event, nil
}

// CurrentState returns the latest recorded lifecycle state of a request, or
// nil when no progress has been recorded. Restricted to the request's
// customer and its assigned technician.
func (s *DefaultDispatchService) CurrentState(ctx context.Context, requestID, callerID string) (*models.ProgressEvent, error) {
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != callerID && req.TechnicianID != callerID {
		return nil, newError(CodeForbidden, "request %s does not involve this principal", requestID)
	}

	latest, err := s.Events.Latest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to read current state: %w", err)
	}
	return latest, nil
}

// Progress returns the request together with its full ordered progress log.
func (s *DefaultDispatchService) Progress(ctx context.Context, requestID, callerID string) (*RequestProgress, error) {
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != callerID && req.TechnicianID != callerID {
		return nil, newError(CodeForbidden, "request %s does not involve this principal", requestID)
	}

	events, err := s.Events.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return &RequestProgress{Request: req, Events: events}, nil
}

func (s *DefaultDispatchService) getRequest(ctx context.Context, requestID string) (*models.ServiceRequest, error) {
	if requestID == "" {
		return nil, newError(CodeValidation, "request id is required")
	}
	req, err := s.Requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrNotFound) {
			return nil, newError(CodeNotFound, "service request %s not found", requestID)
		}
		return nil, fmt.Errorf("failed to fetch request: %w", err)
	}
	return req, nil
}
