package rendering

import (
	"embed"
	"fmt"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/templating"
)

//go:embed templates/*.html
var layoutFS embed.FS

// builtinNamespace seeds the deterministic IDs of builtin templates so the
// same layout resolves to the same UUID across deployments.
var builtinNamespace = uuid.MustParse("7f1c7e52-9b6a-4d34-8a2e-3f0d5b1c9e47")

// BuiltinTemplate pairs a shipped layout with its display configuration
type BuiltinTemplate struct {
	ID           uuid.UUID
	Name         string
	Layout       templating.TemplateLayout
	PrimaryColor string
	FontFamily   string
	Description  string
}

// BuiltinTemplates returns the layouts shipped with the binary. They are
// visible to every tenant and never stored in the database.
func BuiltinTemplates() []BuiltinTemplate {
	return []BuiltinTemplate{
		{
			ID:           BuiltinTemplateID(templating.LayoutClassic),
			Name:         "Classic",
			Layout:       templating.LayoutClassic,
			PrimaryColor: "#1a1a2e",
			FontFamily:   "Georgia, 'Times New Roman', serif",
			Description:  "Traditional invoice with a ruled item table and a formal totals block",
		},
		{
			ID:           BuiltinTemplateID(templating.LayoutModern),
			Name:         "Modern",
			Layout:       templating.LayoutModern,
			PrimaryColor: "#0f3460",
			FontFamily:   "Helvetica, Arial, sans-serif",
			Description:  "Full-width color banner with an open, airy item list",
		},
		{
			ID:           BuiltinTemplateID(templating.LayoutCompact),
			Name:         "Compact",
			Layout:       templating.LayoutCompact,
			PrimaryColor: "#16213e",
			FontFamily:   "Helvetica, Arial, sans-serif",
			Description:  "Dense single-page layout for invoices with many line items",
		},
	}
}

// BuiltinTemplateID derives the stable UUID for a builtin layout
func BuiltinTemplateID(layout templating.TemplateLayout) uuid.UUID {
	return uuid.NewSHA1(builtinNamespace, []byte(layout))
}

// FindBuiltinTemplate returns the builtin with the given ID, or nil
func FindBuiltinTemplate(id uuid.UUID) *BuiltinTemplate {
	for _, t := range BuiltinTemplates() {
		if t.ID == id {
			return &t
		}
	}
	return nil
}

// LoadLayoutContent reads the embedded HTML for a layout
func LoadLayoutContent(layout templating.TemplateLayout) (string, error) {
	content, err := layoutFS.ReadFile(fmt.Sprintf("templates/%s.html", layout))
	if err != nil {
		return "", fmt.Errorf("failed to read layout %s: %w", layout, err)
	}
	return string(content), nil
}
