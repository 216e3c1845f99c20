package models

import "time"

// Report is a customer complaint about a technician, tied to the request that
// links the two.
type Report struct {
	ID           string    `bson:"id" json:"id"`
	CustomerID   string    `bson:"customer_id" json:"customerId"`
	TechnicianID string    `bson:"technician_id" json:"technicianId"`
	RequestID    string    `bson:"request_id" json:"requestId"`
	Description  string    `bson:"description" json:"description"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
