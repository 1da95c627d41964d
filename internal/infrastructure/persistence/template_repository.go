package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/templating"
	"github.com/invoicehub/backend/internal/infrastructure/persistence/models"
)

// GormTemplateRepository implements TemplateRepository using GORM. Only
// tenant-custom templates are stored; builtins never reach the database.
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByIDForTenant finds a template by ID for a specific tenant
func (r *GormTemplateRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*templating.InvoiceTemplate, error) {
	var model models.InvoiceTemplateModel
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

// FindAllForTenant lists a tenant's custom templates
func (r *GormTemplateRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]templating.InvoiceTemplate, error) {
	var templateModels []models.InvoiceTemplateModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&templateModels).Error; err != nil {
		return nil, err
	}
	templates := make([]templating.InvoiceTemplate, len(templateModels))
	for i, model := range templateModels {
		templates[i] = *model.ToDomain()
	}
	return templates, nil
}

// FindDefaultForTenant returns the tenant's default template, or nil when
// none is flagged
func (r *GormTemplateRepository) FindDefaultForTenant(ctx context.Context, tenantID uuid.UUID) (*templating.InvoiceTemplate, error) {
	var model models.InvoiceTemplateModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_default = ?", tenantID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a template. Setting IsDefault demotes the tenant's
// previous default in the same transaction.
func (r *GormTemplateRepository) Save(ctx context.Context, template *templating.InvoiceTemplate) error {
	model := models.InvoiceTemplateModelFromDomain(template)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if template.IsDefault {
			if err := tx.Model(&models.InvoiceTemplateModel{}).
				Where("tenant_id = ? AND id <> ? AND is_default = ?", template.TenantID, template.ID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(model).Error
	})
}

// DeleteForTenant removes a template for a tenant
func (r *GormTemplateRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceTemplateModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormTemplateRepository implements TemplateRepository
var _ templating.TemplateRepository = (*GormTemplateRepository)(nil)
