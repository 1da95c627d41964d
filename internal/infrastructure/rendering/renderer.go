package rendering

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appbilling "github.com/invoicehub/backend/internal/application/billing"
	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/templating"
)

// InvoiceRenderer resolves a template for an invoice and produces HTML or
// PDF output. Resolution order: explicit template ID (builtin or tenant
// custom), then the tenant's default template, then the builtin classic
// layout.
type InvoiceRenderer struct {
	engine       *Engine
	templateRepo templating.TemplateRepository
	pdf          PDFRenderer
	logger       *zap.Logger
}

// InvoiceRendererOption configures the renderer
type InvoiceRendererOption func(*InvoiceRenderer)

// WithPDFRenderer wires the HTML-to-PDF backend
func WithPDFRenderer(p PDFRenderer) InvoiceRendererOption {
	return func(r *InvoiceRenderer) { r.pdf = p }
}

// NewInvoiceRenderer creates a renderer backed by the given template store
func NewInvoiceRenderer(engine *Engine, templateRepo templating.TemplateRepository, logger *zap.Logger, opts ...InvoiceRendererOption) *InvoiceRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &InvoiceRenderer{
		engine:       engine,
		templateRepo: templateRepo,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderHTML renders an invoice to an HTML document
func (r *InvoiceRenderer) RenderHTML(ctx context.Context, invoice *billing.Invoice, templateID *uuid.UUID) (string, error) {
	resolved, err := r.resolveTemplate(ctx, invoice.TenantID, templateID)
	if err != nil {
		return "", err
	}

	doc := NewInvoiceDocument(invoice, resolved.template)

	html, err := r.engine.Render(resolved.cacheKey, resolved.content, doc)
	if err != nil {
		r.logger.Error("invoice render failed",
			zap.String("invoice_id", invoice.ID.String()),
			zap.String("template_key", resolved.cacheKey),
			zap.Error(err))
		return "", NewRenderError(ErrCodeRenderFailed, "Failed to render invoice document", err)
	}
	return html, nil
}

// RenderPDF renders an invoice to a PDF document
func (r *InvoiceRenderer) RenderPDF(ctx context.Context, invoice *billing.Invoice, templateID *uuid.UUID) ([]byte, error) {
	if r.pdf == nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "PDF rendering is not enabled", nil)
	}

	html, err := r.RenderHTML(ctx, invoice, templateID)
	if err != nil {
		return nil, err
	}
	return r.pdf.Render(ctx, html)
}

type resolvedTemplate struct {
	cacheKey string
	content  string
	// template is nil for builtins rendered with their shipped styling.
	template *templating.InvoiceTemplate
}

func (r *InvoiceRenderer) resolveTemplate(ctx context.Context, tenantID uuid.UUID, templateID *uuid.UUID) (*resolvedTemplate, error) {
	if templateID != nil {
		if builtin := FindBuiltinTemplate(*templateID); builtin != nil {
			return r.builtinResolution(builtin)
		}

		tmpl, err := r.templateRepo.FindByIDForTenant(ctx, tenantID, *templateID)
		if err != nil {
			return nil, err
		}
		return r.customResolution(tmpl)
	}

	tmpl, err := r.templateRepo.FindDefaultForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tmpl != nil {
		return r.customResolution(tmpl)
	}

	classic := FindBuiltinTemplate(BuiltinTemplateID(templating.LayoutClassic))
	return r.builtinResolution(classic)
}

func (r *InvoiceRenderer) builtinResolution(builtin *BuiltinTemplate) (*resolvedTemplate, error) {
	content, err := LoadLayoutContent(builtin.Layout)
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "Builtin layout is unavailable", err)
	}
	tmpl := &templating.InvoiceTemplate{
		Name:         builtin.Name,
		Layout:       builtin.Layout,
		PrimaryColor: builtin.PrimaryColor,
		FontFamily:   builtin.FontFamily,
		Builtin:      true,
	}
	tmpl.ID = builtin.ID
	return &resolvedTemplate{
		cacheKey: fmt.Sprintf("builtin:%s", builtin.Layout),
		content:  content,
		template: tmpl,
	}, nil
}

func (r *InvoiceRenderer) customResolution(tmpl *templating.InvoiceTemplate) (*resolvedTemplate, error) {
	if !tmpl.Layout.IsValid() {
		return nil, shared.NewValidationError("Unknown template layout: " + string(tmpl.Layout))
	}
	content, err := LoadLayoutContent(tmpl.Layout)
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "Template layout is unavailable", err)
	}
	return &resolvedTemplate{
		cacheKey: customCacheKey(tmpl),
		content:  content,
		template: tmpl,
	}, nil
}

// customCacheKey includes the template version so edits miss stale entries
// even without an explicit invalidation.
func customCacheKey(tmpl *templating.InvoiceTemplate) string {
	return fmt.Sprintf("custom:%s:v%d", tmpl.ID, tmpl.Version)
}

var _ appbilling.InvoiceRenderer = (*InvoiceRenderer)(nil)
