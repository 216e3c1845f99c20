package dispatch

import (
	"context"

	catalogRepo "servitech/database/repository/catalog"
	paymentRepo "servitech/database/repository/payment"
	progressRepo "servitech/database/repository/progress"
	reportRepo "servitech/database/repository/report"
	requestRepo "servitech/database/repository/request"
	"servitech/models"
)

// Notifier emits a user-visible notification. Emission is fire-and-forget
// relative to the triggering transition: the dispatch service reports the
// primary effect as successful even when notification fails, but the failure
// is logged, never silently dropped.
type Notifier interface {
	Notify(ctx context.Context, userID, message string) error
}

// CreateRequestInput carries the fields a customer submits when requesting a service.
type CreateRequestInput struct {
	ServiceType  string  `json:"serviceType"`
	Address      string  `json:"address"`
	Details      string  `json:"details"`
	Access       string  `json:"access"`
	AccessReason string  `json:"accessReason"`
	DistanceKm   float64 `json:"distanceKm"`
}

// Assignment is the successful outcome of a claim.
type Assignment struct {
	RequestID        string `json:"requestId"`
	TechnicianID     string `json:"technicianId"`
	ConfirmationCode string `json:"confirmationCode"`
}

// RequestProgress bundles a request with its full ordered progress log.
type RequestProgress struct {
	Request *models.ServiceRequest `json:"request"`
	Events  []models.ProgressEvent `json:"events"`
}

// Service is the dispatch core: request intake, technician assignment, the
// lifecycle state machine, and settlement.
type Service interface {
	// Request intake (customer side).
	CreateRequest(ctx context.Context, customerID string, in CreateRequestInput) (*models.ServiceRequest, error)
	LatestActiveRequest(ctx context.Context, customerID string) (*models.ServiceRequest, error)
	CancelByCustomer(ctx context.Context, requestID, customerID string) error
	CompletedByCustomer(ctx context.Context, customerID string) ([]models.ServiceRequest, error)

	// Assignment & capacity (technician side).
	ListAvailable(ctx context.Context) ([]models.ServiceRequest, error)
	ListAssigned(ctx context.Context, technicianID string) ([]models.ServiceRequest, error)
	CompletedByTechnician(ctx context.Context, technicianID string) ([]models.ServiceRequest, error)
	Claim(ctx context.Context, requestID, technicianID string) (*Assignment, error)
	CancelByTechnician(ctx context.Context, requestID, technicianID string) error

	// Lifecycle engine.
	Advance(ctx context.Context, requestID, technicianID, target, confirmationCode, detail string) (*models.ProgressEvent, error)
	CurrentState(ctx context.Context, requestID, callerID string) (*models.ProgressEvent, error)
	Progress(ctx context.Context, requestID, callerID string) (*RequestProgress, error)

	// Settlement.
	Settle(ctx context.Context, requestID, customerID, method string, amount float64) (*models.Payment, error)
	PaymentsByTechnician(ctx context.Context, technicianID string) ([]models.Payment, error)

	// Reports & catalog.
	ReportTechnician(ctx context.Context, customerID, requestID, technicianID, description string) (*models.Report, error)
	ListServiceTypes(ctx context.Context) ([]models.ServiceType, error)
}

// DefaultDispatchService is the production implementation of Service.
type DefaultDispatchService struct {
	Requests        requestRepo.RequestRepository
	Events          progressRepo.ProgressRepository
	Payments        paymentRepo.PaymentRepository
	Catalog         catalogRepo.CatalogRepository
	Reports         reportRepo.ReportRepository
	Notifier        Notifier
	DefaultCapacity int
}

var _ Service = (*DefaultDispatchService)(nil)
