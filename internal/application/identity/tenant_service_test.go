package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/invoicehub/backend/internal/domain/identity"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// MockTenantRepository is a mock implementation of TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindBySlug(ctx context.Context, slug string) (*identity.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockTenantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

// Verify interface compliance
var _ identity.TenantRepository = (*MockTenantRepository)(nil)

func newTenantForTest() *identity.Tenant {
	tenant, _ := identity.NewTenant("acme", "Acme Corp", valueobject.USD)
	return tenant
}

func TestTenantService_CreateTenant_Success(t *testing.T) {
	mockRepo := new(MockTenantRepository)
	service := NewTenantService(mockRepo, nil)

	ctx := context.Background()

	mockRepo.On("ExistsBySlug", ctx, "acme").Return(false, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*identity.Tenant")).Return(nil)

	result, err := service.CreateTenant(ctx, CreateTenantRequest{
		Slug: "acme",
		Name: "Acme Corp",
	})

	assert.NoError(t, err)
	assert.Equal(t, "acme", result.Slug)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, "free", result.Plan)
	assert.Equal(t, 10, result.AssistQuota)
	assert.Equal(t, "USD", result.Currency)
	assert.Equal(t, "INV-", result.Numbering.InvoicePrefix)
	assert.Equal(t, 1000, result.Numbering.InvoiceStartNumber)
	mockRepo.AssertExpectations(t)
}

func TestTenantService_CreateTenant_DuplicateSlug(t *testing.T) {
	mockRepo := new(MockTenantRepository)
	service := NewTenantService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("ExistsBySlug", ctx, "acme").Return(true, nil)

	result, err := service.CreateTenant(ctx, CreateTenantRequest{Slug: "acme", Name: "Acme Corp"})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeConflict, domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTenantService_CreateTenant_WithPlan(t *testing.T) {
	mockRepo := new(MockTenantRepository)
	service := NewTenantService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("ExistsBySlug", ctx, "acme").Return(false, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*identity.Tenant")).Return(nil)

	result, err := service.CreateTenant(ctx, CreateTenantRequest{
		Slug: "acme",
		Name: "Acme Corp",
		Plan: "enterprise",
	})

	assert.NoError(t, err)
	assert.Equal(t, "enterprise", result.Plan)
	assert.Equal(t, 2000, result.AssistQuota)
}

func TestTenantService_UpdateNumbering(t *testing.T) {
	mockRepo := new(MockTenantRepository)
	service := NewTenantService(mockRepo, nil)

	ctx := context.Background()
	tenant := newTenantForTest()

	mockRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	mockRepo.On("Save", ctx, tenant).Return(nil)

	result, err := service.UpdateNumbering(ctx, tenant.ID, UpdateNumberingRequest{
		InvoicePrefix:      "ACME-",
		InvoiceStartNumber: 5000,
	})

	assert.NoError(t, err)
	assert.Equal(t, "ACME-", result.Numbering.InvoicePrefix)
	assert.Equal(t, 5000, result.Numbering.InvoiceStartNumber)
}

func TestTenantService_UpdateNumbering_EmptyPrefixFallsBack(t *testing.T) {
	mockRepo := new(MockTenantRepository)
	service := NewTenantService(mockRepo, nil)

	ctx := context.Background()
	tenant := newTenantForTest()

	mockRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	mockRepo.On("Save", ctx, tenant).Return(nil)

	result, err := service.UpdateNumbering(ctx, tenant.ID, UpdateNumberingRequest{})

	assert.NoError(t, err)
	assert.Equal(t, "INV-", result.Numbering.InvoicePrefix)
	assert.Equal(t, 1000, result.Numbering.InvoiceStartNumber)
}

func TestTenantService_ChangePlan_Invalid(t *testing.T) {
	mockRepo := new(MockTenantRepository)
	service := NewTenantService(mockRepo, nil)

	ctx := context.Background()
	tenant := newTenantForTest()

	mockRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)

	result, err := service.ChangePlan(ctx, tenant.ID, "platinum")

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeValidation, domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTenantService_SuspendAndActivate(t *testing.T) {
	mockRepo := new(MockTenantRepository)
	service := NewTenantService(mockRepo, nil)

	ctx := context.Background()
	tenant := newTenantForTest()

	mockRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	mockRepo.On("Save", ctx, tenant).Return(nil)

	suspended, err := service.SuspendTenant(ctx, tenant.ID)
	assert.NoError(t, err)
	assert.Equal(t, "suspended", suspended.Status)

	activated, err := service.ActivateTenant(ctx, tenant.ID)
	assert.NoError(t, err)
	assert.Equal(t, "active", activated.Status)
}
