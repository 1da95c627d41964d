package templating

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/templating"
)

// CreateTemplateRequest creates a tenant-custom invoice template
type CreateTemplateRequest struct {
	Name         string `json:"name" binding:"required"`
	Layout       string `json:"layout" binding:"required"`
	PrimaryColor string `json:"primary_color"`
	FontFamily   string `json:"font_family"`
	Description  string `json:"description"`
}

// UpdateTemplateRequest patches a template's configuration
type UpdateTemplateRequest struct {
	Name         *string `json:"name"`
	Layout       *string `json:"layout"`
	PrimaryColor *string `json:"primary_color"`
	FontFamily   *string `json:"font_family"`
	Description  *string `json:"description"`
}

// TemplateResponse represents a template in API responses
type TemplateResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Layout       string    `json:"layout"`
	PrimaryColor string    `json:"primary_color,omitempty"`
	FontFamily   string    `json:"font_family,omitempty"`
	Description  string    `json:"description,omitempty"`
	IsDefault    bool      `json:"is_default"`
	Builtin      bool      `json:"builtin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toTemplateResponse(template *templating.InvoiceTemplate) TemplateResponse {
	return TemplateResponse{
		ID:           template.ID,
		Name:         template.Name,
		Layout:       string(template.Layout),
		PrimaryColor: template.PrimaryColor,
		FontFamily:   template.FontFamily,
		Description:  template.Description,
		IsDefault:    template.IsDefault,
		Builtin:      template.Builtin,
		CreatedAt:    template.CreatedAt,
		UpdatedAt:    template.UpdatedAt,
	}
}

// TemplateService manages tenant invoice templates
type TemplateService struct {
	templateRepo templating.TemplateRepository
	logger       *zap.Logger
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo templating.TemplateRepository, logger *zap.Logger) *TemplateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// CreateTemplate creates a tenant-custom template
func (s *TemplateService) CreateTemplate(ctx context.Context, tenantID uuid.UUID, req CreateTemplateRequest) (*TemplateResponse, error) {
	template, err := templating.NewInvoiceTemplate(tenantID, req.Name,
		templating.TemplateLayout(req.Layout), req.PrimaryColor)
	if err != nil {
		return nil, err
	}
	template.FontFamily = req.FontFamily
	template.Description = req.Description

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}

	s.logger.Info("template created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("template_id", template.ID.String()))

	resp := toTemplateResponse(template)
	return &resp, nil
}

// GetTemplate fetches a template for the tenant
func (s *TemplateService) GetTemplate(ctx context.Context, tenantID, id uuid.UUID) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := toTemplateResponse(template)
	return &resp, nil
}

// ListTemplates lists the tenant's custom templates
func (s *TemplateService) ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]TemplateResponse, error) {
	templates, err := s.templateRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]TemplateResponse, 0, len(templates))
	for i := range templates {
		responses = append(responses, toTemplateResponse(&templates[i]))
	}
	return responses, nil
}

// UpdateTemplate patches a template's configuration
func (s *TemplateService) UpdateTemplate(ctx context.Context, tenantID, id uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	name := template.Name
	if req.Name != nil {
		name = *req.Name
	}
	layout := template.Layout
	if req.Layout != nil {
		layout = templating.TemplateLayout(*req.Layout)
	}
	primaryColor := template.PrimaryColor
	if req.PrimaryColor != nil {
		primaryColor = *req.PrimaryColor
	}
	fontFamily := template.FontFamily
	if req.FontFamily != nil {
		fontFamily = *req.FontFamily
	}
	description := template.Description
	if req.Description != nil {
		description = *req.Description
	}

	if err := template.Update(name, layout, primaryColor, fontFamily, description); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}
	resp := toTemplateResponse(template)
	return &resp, nil
}

// SetDefaultTemplate flags a template as the tenant's default
func (s *TemplateService) SetDefaultTemplate(ctx context.Context, tenantID, id uuid.UUID) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := template.SetDefault(true); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}
	resp := toTemplateResponse(template)
	return &resp, nil
}

// DeleteTemplate removes a custom template
func (s *TemplateService) DeleteTemplate(ctx context.Context, tenantID, id uuid.UUID) error {
	template, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if template.Builtin {
		return shared.NewInvalidOperationError("Builtin templates cannot be deleted")
	}
	return s.templateRepo.DeleteForTenant(ctx, tenantID, id)
}
