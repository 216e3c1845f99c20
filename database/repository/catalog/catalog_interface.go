package catalogRepo

import (
	"context"
	"errors"

	"servitech/models"
)

// ErrNotFound indicates the referenced service type is not in the catalog.
var ErrNotFound = errors.New("service type not found")

// CatalogRepository defines data access for the service-type catalog.
type CatalogRepository interface {
	// List retrieves all catalog entries.
	List(ctx context.Context) ([]models.ServiceType, error)
	// GetByName retrieves a catalog entry by its name.
	GetByName(ctx context.Context, name string) (*models.ServiceType, error)
}
