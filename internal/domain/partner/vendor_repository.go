package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	// FindByIDForTenant finds a vendor by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Vendor, error)

	// FindAllForTenant finds a tenant's vendors
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Vendor, error)

	// ExistsByEmailForTenant checks whether another vendor of the tenant
	// already uses the email address
	ExistsByEmailForTenant(ctx context.Context, tenantID uuid.UUID, email string, excludeID uuid.UUID) (bool, error)

	// Save creates or updates a vendor. A duplicate email for the same
	// tenant surfaces as a conflict error.
	Save(ctx context.Context, vendor *Vendor) error

	// DeleteForTenant soft deletes a vendor for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
