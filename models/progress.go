package models

import "time"

// Lifecycle states a claimed request moves through, in order. The latest
// progress event is the authoritative current state of the work; "completado"
// is appended only by settlement.
const (
	StateOnTheWay   = "en_camino"
	StateOnSite     = "en_lugar"
	StateInProgress = "en_proceso"
	StateFinished   = "finalizado"
	StateCompleted  = "completado"
)

// ProgressEvent is an append-only log entry recording one lifecycle
// transition of a service request.
type ProgressEvent struct {
	ID           string    `bson:"id" json:"id"`
	RequestID    string    `bson:"request_id" json:"requestId"`
	TechnicianID string    `bson:"technician_id" json:"technicianId"`
	State        string    `bson:"state" json:"state"`
	Detail       string    `bson:"detail,omitempty" json:"detail,omitempty"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
}
