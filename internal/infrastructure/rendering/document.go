package rendering

import (
	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/templating"
)

// TemplateStyle carries the styling knobs a layout may reference. Values
// are validated at the domain layer before they reach a template.
type TemplateStyle struct {
	PrimaryColor string
	FontFamily   string
}

// InvoiceDocument is the view model handed to invoice layouts. Layouts read
// from this snapshot only, never from repositories.
type InvoiceDocument struct {
	Invoice  *billing.Invoice
	Vendor   billing.PartySnapshot
	Customer billing.PartySnapshot
	Items    billing.InvoiceItems
	Style    TemplateStyle

	// TotalInWords spells the invoice total in legal format.
	TotalInWords string
}

// NewInvoiceDocument builds the view model for an invoice and the template
// styling it. A nil template falls back to neutral defaults.
func NewInvoiceDocument(invoice *billing.Invoice, tmpl *templating.InvoiceTemplate) *InvoiceDocument {
	style := TemplateStyle{
		PrimaryColor: "#1a1a2e",
		FontFamily:   "Helvetica, Arial, sans-serif",
	}
	if tmpl != nil {
		if tmpl.PrimaryColor != "" {
			style.PrimaryColor = tmpl.PrimaryColor
		}
		if tmpl.FontFamily != "" {
			style.FontFamily = tmpl.FontFamily
		}
	}

	words, err := billing.AmountInWords(invoice.Total.Float64(), invoice.Currency, billing.WordsFormatLegal, true)
	if err != nil {
		words = ""
	}

	return &InvoiceDocument{
		Invoice:      invoice,
		Vendor:       invoice.Vendor,
		Customer:     invoice.Customer,
		Items:        invoice.Items,
		Style:        style,
		TotalInWords: words,
	}
}
