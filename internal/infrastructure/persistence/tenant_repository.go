package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicehub/backend/internal/domain/identity"
	"github.com/invoicehub/backend/internal/domain/shared"
)

// GormTenantRepository implements TenantRepository using GORM. Tenants are
// persisted directly; the aggregate carries its own column mapping.
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	var tenant identity.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// FindBySlug finds a tenant by its unique slug
func (r *GormTenantRepository) FindBySlug(ctx context.Context, slug string) (*identity.Tenant, error) {
	var tenant identity.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// FindAll finds all tenants matching the filter
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	var tenants []identity.Tenant
	query := r.db.WithContext(ctx).Model(&identity.Tenant{})

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR slug ILIKE ?", searchPattern, searchPattern)
	}

	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	// Apply ordering with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, TenantSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	if err := query.Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

// FindActiveIDs returns the IDs of all active tenants
func (r *GormTenantRepository) FindActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&identity.Tenant{}).
		Where("status = ?", identity.TenantStatusActive).
		Order("created_at ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ExistsBySlug checks if a tenant with the given slug exists
func (r *GormTenantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Tenant{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a tenant. A duplicate slug surfaces as a conflict.
func (r *GormTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	if err := r.db.WithContext(ctx).Save(tenant).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewConflictError("A tenant with this slug already exists")
		}
		return err
	}
	return nil
}

// Ensure GormTenantRepository implements TenantRepository
var _ identity.TenantRepository = (*GormTenantRepository)(nil)
