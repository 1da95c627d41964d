package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicehub/backend/internal/domain/identity"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// TenantService handles tenant provisioning and settings
type TenantService struct {
	tenantRepo identity.TenantRepository
	logger     *zap.Logger
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo identity.TenantRepository, logger *zap.Logger) *TenantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantService{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// CreateTenant provisions a new tenant account
func (s *TenantService) CreateTenant(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	exists, err := s.tenantRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("Tenant slug already exists")
	}

	tenant, err := identity.NewTenant(req.Slug, req.Name, valueobject.Currency(req.Currency))
	if err != nil {
		return nil, err
	}
	tenant.Email = req.Email
	if req.Plan != "" {
		if err := tenant.ChangePlan(identity.TenantPlan(req.Plan)); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("tenant created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("slug", tenant.Slug))

	resp := toTenantResponse(tenant)
	return &resp, nil
}

// GetTenant fetches a tenant by ID
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTenantResponse(tenant)
	return &resp, nil
}

// GetTenantBySlug fetches a tenant by its slug
func (s *TenantService) GetTenantBySlug(ctx context.Context, slug string) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	resp := toTenantResponse(tenant)
	return &resp, nil
}

// ListTenants lists tenants with pagination
func (s *TenantService) ListTenants(ctx context.Context, filter shared.Filter) ([]TenantResponse, error) {
	tenants, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		responses = append(responses, toTenantResponse(&tenants[i]))
	}
	return responses, nil
}

// UpdateTenant patches a tenant's profile
func (s *TenantService) UpdateTenant(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := tenant.Name
	if req.Name != nil {
		name = *req.Name
	}
	email := tenant.Email
	if req.Email != nil {
		email = *req.Email
	}
	notes := tenant.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := tenant.Update(name, email, notes); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	resp := toTenantResponse(tenant)
	return &resp, nil
}

// UpdateNumbering changes the tenant's invoice numbering settings. Already
// issued invoice numbers are unaffected.
func (s *TenantService) UpdateNumbering(ctx context.Context, id uuid.UUID, req UpdateNumberingRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenant.SetNumbering(req.InvoicePrefix, req.InvoiceStartNumber); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("tenant numbering updated",
		zap.String("tenant_id", id.String()),
		zap.String("prefix", tenant.Numbering.InvoicePrefix))

	resp := toTenantResponse(tenant)
	return &resp, nil
}

// ChangePlan moves the tenant to a different subscription tier
func (s *TenantService) ChangePlan(ctx context.Context, id uuid.UUID, plan string) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenant.ChangePlan(identity.TenantPlan(plan)); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("tenant plan changed",
		zap.String("tenant_id", id.String()),
		zap.String("plan", plan))

	resp := toTenantResponse(tenant)
	return &resp, nil
}

// SuspendTenant blocks the tenant from mutating operations
func (s *TenantService) SuspendTenant(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tenant.Suspend()
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Warn("tenant suspended", zap.String("tenant_id", id.String()))

	resp := toTenantResponse(tenant)
	return &resp, nil
}

// ActivateTenant restores a suspended tenant
func (s *TenantService) ActivateTenant(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tenant.Activate()
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("tenant activated", zap.String("tenant_id", id.String()))

	resp := toTenantResponse(tenant)
	return &resp, nil
}
