package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByIDForTenant finds an invoice by ID for a specific tenant
func (r *GormInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumberForTenant finds an invoice by its number for a tenant
func (r *GormInvoiceRepository) FindByNumberForTenant(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND invoice_number = ?", tenantID, invoiceNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds invoices for a tenant with filtering
func (r *GormInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyInvoiceFilter(query, filter)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// CountForTenant counts invoices for a tenant matching the filter
func (r *GormInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.InvoiceFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyInvoiceFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindDueForTenant finds dispatched invoices whose due date has passed and
// whose balance is still positive
func (r *GormInvoiceRepository) FindDueForTenant(ctx context.Context, tenantID uuid.UUID, asOf time.Time, limit int) ([]billing.Invoice, error) {
	if limit <= 0 {
		limit = 100
	}
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status IN ? AND due_date < ? AND balance_due > 0",
			tenantID, []billing.InvoiceStatus{billing.StatusSent, billing.StatusViewed}, asOf).
		Order("due_date ASC").
		Limit(limit).
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// FindLatestNumber returns the invoice number of the tenant's most recently
// created invoice. Creation order, not lexicographic order, drives numbering.
func (r *GormInvoiceRepository) FindLatestNumber(ctx context.Context, tenantID uuid.UUID) (string, bool, error) {
	var numbers []string
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(1).
		Pluck("invoice_number", &numbers).Error; err != nil {
		return "", false, err
	}
	if len(numbers) == 0 {
		return "", false, nil
	}
	return numbers[0], true, nil
}

// Save inserts a new invoice. A duplicate (tenant, number) pair surfaces as
// a conflict error.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewConflictError("An invoice with this number already exists")
		}
		return err
	}
	return nil
}

// SaveWithLock updates an invoice guarded by its version column
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", invoice.ID, invoice.Version-1).
		Select("*").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteForTenant soft-deletes an invoice for a tenant. The row is marked
// with deleted_at rather than removed, so the payment ledger stays intact
// and the invoice can be audited after deletion.
func (r *GormInvoiceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyInvoiceFilter applies filter options to the query
func (r *GormInvoiceRepository) applyInvoiceFilter(query *gorm.DB, filter billing.InvoiceFilter) *gorm.DB {
	query = r.applyInvoiceFilterWithoutPagination(query, filter)

	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	// Apply ordering with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, InvoiceSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	return query
}

// applyInvoiceFilterWithoutPagination applies filter options without pagination
func (r *GormInvoiceRepository) applyInvoiceFilterWithoutPagination(query *gorm.DB, filter billing.InvoiceFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number ILIKE ? OR customer->>'name' ILIKE ?",
			searchPattern, searchPattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.FromDate != nil {
		query = query.Where("issue_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("issue_date <= ?", *filter.ToDate)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date < ?", *filter.DueBefore)
	}
	if filter.Customer != "" {
		query = query.Where("customer->>'name' ILIKE ?", "%"+filter.Customer+"%")
	}

	return query
}

// isUniqueViolation reports whether the error is a unique constraint
// violation from the database
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
