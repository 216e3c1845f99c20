package models

import "time"

// Payment statuses. A payment is inserted as "pendiente" and flipped to
// "completado" in the same transaction that completes the request.
const (
	PaymentPending   = "pendiente"
	PaymentCompleted = "completado"
)

// Payment records the settlement of a finished service request.
type Payment struct {
	ID        string    `bson:"id" json:"id"`
	RequestID string    `bson:"request_id" json:"requestId"`
	Amount    float64   `bson:"amount" json:"amount"`
	Method    string    `bson:"method" json:"method"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
