package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID finds a tenant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindBySlug finds a tenant by its unique slug
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)

	// FindAll finds all tenants matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)

	// FindActiveIDs returns the IDs of all active tenants, for
	// maintenance sweeps that iterate tenant by tenant
	FindActiveIDs(ctx context.Context) ([]uuid.UUID, error)

	// ExistsBySlug checks if a tenant with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, tenant *Tenant) error
}
