package models

// TechnicianCapacity caps how many requests a technician may hold in the
// "asignada" state at once. Created lazily on the first claim attempt.
type TechnicianCapacity struct {
	TechnicianID  string `bson:"technician_id" json:"technicianId"`
	MaxConcurrent int    `bson:"max_concurrent" json:"maxConcurrent"`
}
