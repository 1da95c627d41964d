package templating

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/templating"
)

// MockTemplateRepository is a mock implementation of TemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*templating.InvoiceTemplate, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*templating.InvoiceTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]templating.InvoiceTemplate, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]templating.InvoiceTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindDefaultForTenant(ctx context.Context, tenantID uuid.UUID) (*templating.InvoiceTemplate, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*templating.InvoiceTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Save(ctx context.Context, template *templating.InvoiceTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// Verify interface compliance
var _ templating.TemplateRepository = (*MockTemplateRepository)(nil)

func newTestTenantID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func TestTemplateService_CreateTemplate_Success(t *testing.T) {
	mockRepo := new(MockTemplateRepository)
	service := NewTemplateService(mockRepo, nil)

	ctx := context.Background()
	tenantID := newTestTenantID()

	mockRepo.On("Save", ctx, mock.AnythingOfType("*templating.InvoiceTemplate")).Return(nil)

	result, err := service.CreateTemplate(ctx, tenantID, CreateTemplateRequest{
		Name:         "Brand",
		Layout:       "modern",
		PrimaryColor: "#1a73e8",
		FontFamily:   "Inter",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Brand", result.Name)
	assert.Equal(t, "modern", result.Layout)
	assert.False(t, result.IsDefault)
	assert.False(t, result.Builtin)
	mockRepo.AssertExpectations(t)
}

func TestTemplateService_CreateTemplate_UnknownLayout(t *testing.T) {
	mockRepo := new(MockTemplateRepository)
	service := NewTemplateService(mockRepo, nil)

	ctx := context.Background()

	result, err := service.CreateTemplate(ctx, newTestTenantID(), CreateTemplateRequest{
		Name:   "Brand",
		Layout: "vintage",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeValidation, domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTemplateService_UpdateTemplate_BuiltinIsReadOnly(t *testing.T) {
	mockRepo := new(MockTemplateRepository)
	service := NewTemplateService(mockRepo, nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	template, _ := templating.NewInvoiceTemplate(tenantID, "Classic", templating.LayoutClassic, "")
	template.Builtin = true

	mockRepo.On("FindByIDForTenant", ctx, tenantID, template.ID).Return(template, nil)

	name := "Hacked"
	result, err := service.UpdateTemplate(ctx, tenantID, template.ID, UpdateTemplateRequest{Name: &name})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeInvalidOperation, domainErr.Code)
}

func TestTemplateService_SetDefaultTemplate(t *testing.T) {
	mockRepo := new(MockTemplateRepository)
	service := NewTemplateService(mockRepo, nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	template, _ := templating.NewInvoiceTemplate(tenantID, "Brand", templating.LayoutModern, "")

	mockRepo.On("FindByIDForTenant", ctx, tenantID, template.ID).Return(template, nil)
	mockRepo.On("Save", ctx, template).Return(nil)

	result, err := service.SetDefaultTemplate(ctx, tenantID, template.ID)

	assert.NoError(t, err)
	assert.True(t, result.IsDefault)
}

func TestTemplateService_DeleteTemplate_BuiltinRejected(t *testing.T) {
	mockRepo := new(MockTemplateRepository)
	service := NewTemplateService(mockRepo, nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	template, _ := templating.NewInvoiceTemplate(tenantID, "Classic", templating.LayoutClassic, "")
	template.Builtin = true

	mockRepo.On("FindByIDForTenant", ctx, tenantID, template.ID).Return(template, nil)

	err := service.DeleteTemplate(ctx, tenantID, template.ID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeInvalidOperation, domainErr.Code)
	mockRepo.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
}
