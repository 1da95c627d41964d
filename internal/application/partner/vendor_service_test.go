package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/invoicehub/backend/internal/domain/partner"
	"github.com/invoicehub/backend/internal/domain/shared"
)

// MockVendorRepository is a mock implementation of VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Vendor, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) ExistsByEmailForTenant(ctx context.Context, tenantID uuid.UUID, email string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// Verify interface compliance
var _ partner.VendorRepository = (*MockVendorRepository)(nil)

func newTestTenantID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func TestVendorService_CreateVendor_Success(t *testing.T) {
	mockRepo := new(MockVendorRepository)
	service := NewVendorService(mockRepo, nil)

	ctx := context.Background()
	tenantID := newTestTenantID()

	mockRepo.On("ExistsByEmailForTenant", ctx, tenantID, "ap@acme.test", uuid.Nil).Return(false, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*partner.Vendor")).Return(nil)

	result, err := service.CreateVendor(ctx, tenantID, CreateVendorRequest{
		Name:  "Acme Corp",
		Email: "ap@acme.test",
		Address: &AddressRequest{
			Line1:      "1 Main St",
			City:       "Springfield",
			State:      "IL",
			PostalCode: "62701",
		},
		PaymentDetails: "Wire: 123456789",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Acme Corp", result.Name)
	assert.Equal(t, "ap@acme.test", result.Email)
	assert.Equal(t, []string{"1 Main St", "Springfield, IL 62701"}, result.Address)
	mockRepo.AssertExpectations(t)
}

func TestVendorService_CreateVendor_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockVendorRepository)
	service := NewVendorService(mockRepo, nil)

	ctx := context.Background()
	tenantID := newTestTenantID()

	mockRepo.On("ExistsByEmailForTenant", ctx, tenantID, "ap@acme.test", uuid.Nil).Return(true, nil)

	result, err := service.CreateVendor(ctx, tenantID, CreateVendorRequest{
		Name:  "Acme Corp",
		Email: "ap@acme.test",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeConflict, domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestVendorService_UpdateVendor_PartialPatch(t *testing.T) {
	mockRepo := new(MockVendorRepository)
	service := NewVendorService(mockRepo, nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	vendor, _ := partner.NewVendor(tenantID, "Acme Corp", "ap@acme.test")

	mockRepo.On("FindByIDForTenant", ctx, tenantID, vendor.ID).Return(vendor, nil)
	mockRepo.On("Save", ctx, vendor).Return(nil)

	phone := "+1 555 0100"
	result, err := service.UpdateVendor(ctx, tenantID, vendor.ID, UpdateVendorRequest{Phone: &phone})

	assert.NoError(t, err)
	assert.Equal(t, "Acme Corp", result.Name)
	assert.Equal(t, "+1 555 0100", result.Phone)
	assert.Equal(t, "ap@acme.test", result.Email)
}

func TestVendorService_UpdateVendor_EmailCollision(t *testing.T) {
	mockRepo := new(MockVendorRepository)
	service := NewVendorService(mockRepo, nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	vendor, _ := partner.NewVendor(tenantID, "Acme Corp", "ap@acme.test")

	mockRepo.On("FindByIDForTenant", ctx, tenantID, vendor.ID).Return(vendor, nil)
	mockRepo.On("ExistsByEmailForTenant", ctx, tenantID, "billing@acme.test", vendor.ID).Return(true, nil)

	email := "billing@acme.test"
	result, err := service.UpdateVendor(ctx, tenantID, vendor.ID, UpdateVendorRequest{Email: &email})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeConflict, domainErr.Code)
}

func TestVendorService_GetVendor_NotFound(t *testing.T) {
	mockRepo := new(MockVendorRepository)
	service := NewVendorService(mockRepo, nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	id := uuid.New()

	mockRepo.On("FindByIDForTenant", ctx, tenantID, id).Return(nil, shared.ErrNotFound)

	result, err := service.GetVendor(ctx, tenantID, id)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
