package models

import "time"

// Service request statuses. The status field tracks ownership of the request
// (who may act on it next); fine-grained work progress lives in the
// progress_events log.
const (
	StatusPending   = "pendiente"
	StatusAssigned  = "asignada"
	StatusCancelled = "cancelada"
	StatusCompleted = "completado"
)

// Access difficulty levels accepted on request creation.
const (
	AccessEasy     = "facil"
	AccessModerate = "moderado"
	AccessHard     = "dificil"
)

// ServiceRequest is the aggregate root of the dispatch flow. TechnicianID is
// empty until a technician claims the request; ConfirmationCode is issued at
// claim time and gates the sensitive lifecycle transitions.
type ServiceRequest struct {
	ID               string    `bson:"id" json:"id"`
	CustomerID       string    `bson:"customer_id" json:"customerId"`
	TechnicianID     string    `bson:"technician_id,omitempty" json:"technicianId,omitempty"`
	ServiceType      string    `bson:"service_type" json:"serviceType"`
	Address          string    `bson:"address" json:"address"`
	Details          string    `bson:"details,omitempty" json:"details,omitempty"`
	Access           string    `bson:"access" json:"access"`
	AccessReason     string    `bson:"access_reason,omitempty" json:"accessReason,omitempty"`
	DistanceKm       float64   `bson:"distance_km" json:"distanceKm"`
	PriceEstimate    float64   `bson:"price_estimate" json:"priceEstimate"`
	Status           string    `bson:"status" json:"status"`
	ConfirmationCode string    `bson:"confirmation_code,omitempty" json:"-"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updatedAt"`
}
