package templating

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// TemplateLayout selects one of the built-in HTML layouts a template is
// based on. Custom templates configure a layout plus styling knobs; the
// layout markup itself ships with the binary.
type TemplateLayout string

const (
	LayoutClassic TemplateLayout = "classic"
	LayoutModern  TemplateLayout = "modern"
	LayoutCompact TemplateLayout = "compact"
)

// IsValid returns true if the layout is a member of the enum
func (l TemplateLayout) IsValid() bool {
	switch l {
	case LayoutClassic, LayoutModern, LayoutCompact:
		return true
	}
	return false
}

// InvoiceTemplate is a named bag of layout and styling configuration
// consumed by the renderer. It carries no financial data.
type InvoiceTemplate struct {
	shared.TenantAggregateRoot
	Name         string
	Layout       TemplateLayout
	PrimaryColor string
	FontFamily   string
	Description  string
	IsDefault    bool
	Builtin      bool
}

// NewInvoiceTemplate creates a tenant-custom template
func NewInvoiceTemplate(tenantID uuid.UUID, name string, layout TemplateLayout, primaryColor string) (*InvoiceTemplate, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("Tenant ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, shared.NewValidationError("Template name must be 1-100 characters")
	}
	if !layout.IsValid() {
		return nil, shared.NewValidationError("Unknown template layout: " + string(layout))
	}
	if err := validateColor(primaryColor); err != nil {
		return nil, err
	}

	return &InvoiceTemplate{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Layout:              layout,
		PrimaryColor:        primaryColor,
	}, nil
}

// Update patches the template configuration. Builtin templates are
// read-only.
func (t *InvoiceTemplate) Update(name string, layout TemplateLayout, primaryColor, fontFamily, description string) error {
	if t.Builtin {
		return shared.NewInvalidOperationError("Builtin templates cannot be modified")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return shared.NewValidationError("Template name must be 1-100 characters")
	}
	if !layout.IsValid() {
		return shared.NewValidationError("Unknown template layout: " + string(layout))
	}
	if err := validateColor(primaryColor); err != nil {
		return err
	}
	t.Name = name
	t.Layout = layout
	t.PrimaryColor = primaryColor
	t.FontFamily = strings.TrimSpace(fontFamily)
	t.Description = description
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// SetDefault flags this template as the tenant's default. The repository
// demotes the previous default in the same transaction, keeping at most
// one default per tenant.
func (t *InvoiceTemplate) SetDefault(isDefault bool) error {
	if t.Builtin {
		return shared.NewInvalidOperationError("Builtin templates cannot be modified")
	}
	t.IsDefault = isDefault
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

func validateColor(color string) error {
	if color == "" {
		return nil
	}
	if len(color) != 7 || color[0] != '#' {
		return shared.NewValidationError("Primary color must be a #rrggbb hex value")
	}
	for _, c := range color[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return shared.NewValidationError("Primary color must be a #rrggbb hex value")
		}
	}
	return nil
}
