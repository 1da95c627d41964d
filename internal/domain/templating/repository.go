package templating

import (
	"context"

	"github.com/google/uuid"
)

// TemplateRepository defines the interface for template persistence.
// Builtin templates live in code, not in the store; repositories only see
// tenant-custom rows.
type TemplateRepository interface {
	// FindByIDForTenant finds a template by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*InvoiceTemplate, error)

	// FindAllForTenant lists a tenant's custom templates
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]InvoiceTemplate, error)

	// FindDefaultForTenant returns the tenant's default template, or nil
	// when none is flagged
	FindDefaultForTenant(ctx context.Context, tenantID uuid.UUID) (*InvoiceTemplate, error)

	// Save creates or updates a template. Setting IsDefault demotes the
	// tenant's previous default in the same transaction.
	Save(ctx context.Context, template *InvoiceTemplate) error

	// DeleteForTenant removes a template for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
