package requestRepo

import (
	"context"
	"errors"

	"servitech/models"
)

// Sentinel errors surfaced by conditional writes. Zero matched rows on a
// status-guarded update is an expected outcome, not a store failure.
var (
	// ErrNotFound indicates the referenced request does not exist.
	ErrNotFound = errors.New("service request not found")
	// ErrNotPending indicates a claim lost the race: the request is no longer pending.
	ErrNotPending = errors.New("service request is no longer pending")
	// ErrCapacityReached indicates the technician is at their concurrent-assignment cap.
	ErrCapacityReached = errors.New("technician capacity reached")
	// ErrStatusConflict indicates a status-guarded update matched no document.
	ErrStatusConflict = errors.New("service request status conflict")
)

// RequestRepository defines data access for service requests and technician capacity.
type RequestRepository interface {
	// Create inserts a new service request.
	Create(ctx context.Context, req *models.ServiceRequest) error
	// GetByID retrieves a request by its unique ID.
	GetByID(ctx context.Context, id string) (*models.ServiceRequest, error)
	// ListPending retrieves all pending requests in insertion order.
	ListPending(ctx context.Context) ([]models.ServiceRequest, error)
	// ListByTechnician retrieves a technician's requests with the given status.
	ListByTechnician(ctx context.Context, technicianID, status string) ([]models.ServiceRequest, error)
	// ListByCustomer retrieves a customer's requests with the given status.
	ListByCustomer(ctx context.Context, customerID, status string) ([]models.ServiceRequest, error)
	// LatestActiveByCustomer retrieves the customer's most recent non-cancelled request.
	LatestActiveByCustomer(ctx context.Context, customerID string) (*models.ServiceRequest, error)
	// HasPendingForCustomer reports whether the customer already has a pending request.
	HasPendingForCustomer(ctx context.Context, customerID string) (bool, error)

	// Claim atomically assigns a pending request to a technician. The capacity
	// count and the conditional status flip run in one transaction so that two
	// concurrent claims cannot both succeed and a technician cannot exceed
	// maxActive. Returns ErrCapacityReached or ErrNotPending accordingly.
	Claim(ctx context.Context, requestID, technicianID, code string, maxActive int) error
	// CancelByTechnician flips an assigned request back to cancelled, clearing
	// the assignment. Guarded on the request still being assigned to the caller.
	CancelByTechnician(ctx context.Context, requestID, technicianID string) error
	// CancelByCustomer cancels the customer's own request. Guarded on the
	// request belonging to the caller and not yet being completed or cancelled.
	CancelByCustomer(ctx context.Context, requestID, customerID string) error

	// Capacity returns the technician's capacity record, creating it with
	// defaultMax on first use.
	Capacity(ctx context.Context, technicianID string, defaultMax int) (*models.TechnicianCapacity, error)
	// CountActiveByTechnician counts the technician's currently assigned requests.
	CountActiveByTechnician(ctx context.Context, technicianID string) (int64, error)
}
