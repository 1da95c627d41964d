package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	Status    *InvoiceStatus // Filter by status
	Type      *InvoiceType   // Filter by document type
	FromDate  *time.Time     // Filter by issue date range start
	ToDate    *time.Time     // Filter by issue date range end
	DueBefore *time.Time     // Filter by due date cutoff
	Customer  string         // Substring match on customer name
}

// InvoiceRepository defines the interface for invoice persistence.
// Every lookup is tenant-scoped; a cross-tenant ID resolves to not-found.
type InvoiceRepository interface {
	// FindByIDForTenant finds an invoice by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)

	// FindByNumberForTenant finds an invoice by its number for a tenant
	FindByNumberForTenant(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*Invoice, error)

	// FindAllForTenant finds invoices for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) ([]Invoice, error)

	// CountForTenant counts invoices for a tenant matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) (int64, error)

	// FindDueForTenant finds sent or viewed invoices whose due date has
	// passed and whose balance is still positive
	FindDueForTenant(ctx context.Context, tenantID uuid.UUID, asOf time.Time, limit int) ([]Invoice, error)

	// FindLatestNumber returns the invoice number of the tenant's most
	// recently created invoice, or ok=false when none exists. Numbering
	// follows creation order, not lexicographic order.
	FindLatestNumber(ctx context.Context, tenantID uuid.UUID) (string, bool, error)

	// Save inserts a new invoice. A duplicate (tenant, number) pair
	// surfaces as a conflict error.
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock updates an invoice guarded by its version column
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// DeleteForTenant soft deletes an invoice for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// PaymentRepository defines the interface for payment ledger persistence
type PaymentRepository interface {
	// FindByIDForTenant finds a payment by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)

	// FindByInvoice returns an invoice's payments newest-first
	FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]Payment, error)

	// CountByInvoice counts the ledger rows for an invoice
	CountByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) (int64, error)

	// Save inserts a new payment row
	Save(ctx context.Context, payment *Payment) error

	// DeleteForTenant removes a payment row for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
