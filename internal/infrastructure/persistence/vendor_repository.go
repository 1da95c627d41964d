package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicehub/backend/internal/domain/partner"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/infrastructure/persistence/models"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByIDForTenant finds a vendor by ID for a specific tenant
func (r *GormVendorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	var model models.VendorModel
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

// FindAllForTenant finds a tenant's vendors
func (r *GormVendorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Vendor, error) {
	var vendorModels []models.VendorModel
	query := r.db.WithContext(ctx).Model(&models.VendorModel{}).
		Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", searchPattern, searchPattern)
	}

	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	// Apply ordering with whitelist validation to prevent SQL injection
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, VendorSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		}
	} else {
		query = query.Order("name ASC")
	}

	if err := query.Find(&vendorModels).Error; err != nil {
		return nil, err
	}
	vendors := make([]partner.Vendor, len(vendorModels))
	for i, model := range vendorModels {
		vendors[i] = *model.ToDomain()
	}
	return vendors, nil
}

// ExistsByEmailForTenant checks whether another vendor of the tenant already
// uses the email address
func (r *GormVendorRepository) ExistsByEmailForTenant(ctx context.Context, tenantID uuid.UUID, email string, excludeID uuid.UUID) (bool, error) {
	if email == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).
		Model(&models.VendorModel{}).
		Where("tenant_id = ? AND email = ?", tenantID, email)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	model := models.VendorModelFromDomain(vendor)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes a vendor for a tenant
func (r *GormVendorRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.VendorModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormVendorRepository implements VendorRepository
var _ partner.VendorRepository = (*GormVendorRepository)(nil)
