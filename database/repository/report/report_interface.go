package reportRepo

import (
	"context"

	"servitech/models"
)

// ReportRepository defines data access for technician reports.
type ReportRepository interface {
	// Create inserts a new report.
	Create(ctx context.Context, report *models.Report) error
	// ListByTechnician retrieves reports filed against a technician, newest first.
	ListByTechnician(ctx context.Context, technicianID string) ([]models.Report, error)
}
