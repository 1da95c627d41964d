package billing

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// InvoiceItem is a line on an invoice. Amount and TaxAmount are derived
// from quantity, rate and tax rate at construction and never patched.
type InvoiceItem struct {
	ID          uuid.UUID         `json:"id"`
	Description string            `json:"description"`
	Quantity    decimal.Decimal   `json:"quantity"`
	Rate        valueobject.Money `json:"rate"`
	Amount      valueobject.Money `json:"amount"`
	Taxable     bool              `json:"taxable"`
	TaxRate     decimal.Decimal   `json:"tax_rate"`
	TaxAmount   valueobject.Money `json:"tax_amount"`
}

// NewInvoiceItem creates a line item, computing amount = quantity * rate and
// taxAmount = taxable ? amount * taxRate/100 : 0.
func NewInvoiceItem(description string, quantity decimal.Decimal, rate valueobject.Money, taxable bool, taxRate decimal.Decimal) (InvoiceItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return InvoiceItem{}, shared.NewValidationError("Item description cannot be empty")
	}
	if !quantity.IsPositive() {
		return InvoiceItem{}, shared.NewValidationError("Item quantity must be positive")
	}
	if rate.IsNegative() {
		return InvoiceItem{}, shared.NewValidationError("Item rate cannot be negative")
	}
	if taxRate.IsNegative() {
		return InvoiceItem{}, shared.NewValidationError("Item tax rate cannot be negative")
	}

	amount := rate.Multiply(quantity).Round(2)
	taxAmount := valueobject.Zero(rate.Currency())
	if taxable {
		taxAmount = amount.CalculatePercentage(taxRate).Round(2)
	}

	return InvoiceItem{
		ID:          uuid.New(),
		Description: description,
		Quantity:    quantity,
		Rate:        rate,
		Amount:      amount,
		Taxable:     taxable,
		TaxRate:     taxRate,
		TaxAmount:   taxAmount,
	}, nil
}

// InvoiceItems is stored as a JSONB column on the invoice row
type InvoiceItems []InvoiceItem

// Value implements driver.Valuer for database storage
func (items InvoiceItems) Value() (driver.Value, error) {
	if items == nil {
		items = InvoiceItems{}
	}
	return json.Marshal(items)
}

// Scan implements sql.Scanner for database retrieval
func (items *InvoiceItems) Scan(value any) error {
	if value == nil {
		*items = InvoiceItems{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into InvoiceItems", value)
	}
	return json.Unmarshal(data, items)
}

// PartySnapshot is the point-in-time copy of a billing party (the tenant's
// vendor profile or the invoiced customer) frozen into an invoice so later
// profile edits never alter issued documents.
type PartySnapshot struct {
	Name    string              `json:"name"`
	Email   string              `json:"email,omitempty"`
	Phone   string              `json:"phone,omitempty"`
	Address valueobject.Address `json:"address,omitempty"`
	TaxID   string              `json:"tax_id,omitempty"`
	Header  string              `json:"header,omitempty"`
	Footer  string              `json:"footer,omitempty"`
}

// IsEmpty returns true if the snapshot has no content
func (p PartySnapshot) IsEmpty() bool {
	return p.Name == ""
}

// Value implements driver.Valuer for database storage
func (p PartySnapshot) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for database retrieval
func (p *PartySnapshot) Scan(value any) error {
	if value == nil {
		*p = PartySnapshot{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PartySnapshot", value)
	}
	if len(data) == 0 || string(data) == "null" {
		*p = PartySnapshot{}
		return nil
	}
	return json.Unmarshal(data, p)
}
