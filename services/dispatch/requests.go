package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	catalogRepo "servitech/database/repository/catalog"
	requestRepo "servitech/database/repository/request"
	"servitech/models"

	"github.com/google/uuid"
)

// Surcharges applied on top of the catalog base price.
const (
	surchargeModerate = 200
	surchargeHard     = 400
	pricePerKm        = 10
)

func accessSurcharge(access string) (float64, bool) {
	switch access {
	case models.AccessEasy:
		return 0, true
	case models.AccessModerate:
		return surchargeModerate, true
	case models.AccessHard:
		return surchargeHard, true
	default:
		return 0, false
	}
}

// CreateRequest registers a new pending service request for the customer. A
// customer may hold at most one pending request at a time.
func (s *DefaultDispatchService) CreateRequest(ctx context.Context, customerID string, in CreateRequestInput) (*models.ServiceRequest, error) {
	if customerID == "" {
		return nil, newError(CodeAuth, "customer identity is required")
	}
	in.ServiceType = strings.TrimSpace(in.ServiceType)
	in.Address = strings.TrimSpace(in.Address)
	if in.ServiceType == "" || in.Address == "" {
		return nil, newError(CodeValidation, "service type and address are required")
	}
	surcharge, ok := accessSurcharge(in.Access)
	if !ok {
		return nil, newError(CodeValidation, "access must be %s, %s or %s",
			models.AccessEasy, models.AccessModerate, models.AccessHard)
	}
	if in.DistanceKm < 0 {
		return nil, newError(CodeValidation, "distance must not be negative")
	}

	serviceType, err := s.Catalog.GetByName(ctx, in.ServiceType)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, newError(CodeValidation, "unknown service type %q", in.ServiceType)
		}
		return nil, fmt.Errorf("failed to look up service type: %w", err)
	}

	pending, err := s.Requests.HasPendingForCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pending {
		return nil, newError(CodeConflict, "customer already has a pending request")
	}

	req := &models.ServiceRequest{
		ID:            uuid.New().String(),
		CustomerID:    customerID,
		ServiceType:   serviceType.Name,
		Address:       in.Address,
		Details:       in.Details,
		Access:        in.Access,
		AccessReason:  in.AccessReason,
		DistanceKm:    in.DistanceKm,
		PriceEstimate: serviceType.BasePrice + surcharge + pricePerKm*in.DistanceKm,
		Status:        models.StatusPending,
	}
	if err := s.Requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return req, nil
}

// LatestActiveRequest returns the customer's most recent non-cancelled
// request, the view a customer polls while waiting for a technician.
func (s *DefaultDispatchService) LatestActiveRequest(ctx context.Context, customerID string) (*models.ServiceRequest, error) {
	req, err := s.Requests.LatestActiveByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrNotFound) {
			return nil, newError(CodeNotFound, "no active requests registered")
		}
		return nil, fmt.Errorf("failed to fetch latest request: %w", err)
	}
	return req, nil
}

// CompletedByCustomer returns the customer's completed service history.
func (s *DefaultDispatchService) CompletedByCustomer(ctx context.Context, customerID string) ([]models.ServiceRequest, error) {
	reqs, err := s.Requests.ListByCustomer(ctx, customerID, models.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed requests: %w", err)
	}
	return reqs, nil
}

// ReportTechnician files a customer complaint about a technician. The request
// must link the reporting customer and the reported technician.
func (s *DefaultDispatchService) ReportTechnician(ctx context.Context, customerID, requestID, technicianID, description string) (*models.Report, error) {
	if strings.TrimSpace(description) == "" {
		return nil, newError(CodeValidation, "a description is required")
	}
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != customerID || req.TechnicianID != technicianID {
		return nil, newError(CodeNotFound, "request %s does not link this customer and technician", requestID)
	}

	report := &models.Report{
		ID:           uuid.New().String(),
		CustomerID:   customerID,
		TechnicianID: technicianID,
		RequestID:    requestID,
		Description:  description,
	}
	if err := s.Reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

// ListServiceTypes returns the service catalog.
func (s *DefaultDispatchService) ListServiceTypes(ctx context.Context) ([]models.ServiceType, error) {
	types, err := s.Catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list service types: %w", err)
	}
	return types, nil
}
