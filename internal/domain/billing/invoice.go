package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	StatusDraft    InvoiceStatus = "draft"
	StatusSent     InvoiceStatus = "sent"
	StatusViewed   InvoiceStatus = "viewed"
	StatusPaid     InvoiceStatus = "paid"
	StatusOverdue  InvoiceStatus = "overdue"
	StatusCanceled InvoiceStatus = "canceled"
)

// String returns the string representation of the status
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a member of the enum
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusViewed, StatusPaid, StatusOverdue, StatusCanceled:
		return true
	}
	return false
}

// InvoiceType distinguishes the document kinds sharing the invoice shape
type InvoiceType string

const (
	TypeInvoice    InvoiceType = "invoice"
	TypeProforma   InvoiceType = "proforma"
	TypeCreditNote InvoiceType = "credit_note"
	TypeEstimate   InvoiceType = "estimate"
)

// IsValid returns true if the type is a member of the enum
func (t InvoiceType) IsValid() bool {
	switch t {
	case TypeInvoice, TypeProforma, TypeCreditNote, TypeEstimate:
		return true
	}
	return false
}

// Invoice is the aggregate root of the billing domain. It owns the
// denormalized financial fields (subtotal, tax, discount, total, paid,
// balance) which are only ever mutated through the methods below, never by
// generic field assignment.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber  string
	Type           InvoiceType
	Status         InvoiceStatus
	Currency       valueobject.Currency
	Vendor         PartySnapshot
	Customer       PartySnapshot
	Items          InvoiceItems
	Subtotal       valueobject.Money
	TaxAmount      valueobject.Money
	DiscountAmount valueobject.Money
	Total          valueobject.Money
	AmountPaid     valueobject.Money
	BalanceDue     valueobject.Money
	Notes          string
	IssueDate      time.Time
	DueDate        *time.Time
	SentAt         *time.Time
	ViewedAt       *time.Time
	PaidAt         *time.Time
}

// NewInvoice creates a draft invoice. Totals are computed from the items;
// amountPaid starts at zero and balanceDue at the total.
func NewInvoice(
	tenantID uuid.UUID,
	invoiceNumber string,
	invoiceType InvoiceType,
	currency valueobject.Currency,
	vendor PartySnapshot,
	customer PartySnapshot,
	items []InvoiceItem,
	discountAmount decimal.Decimal,
	issueDate time.Time,
	dueDate *time.Time,
) (*Invoice, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("Tenant ID cannot be empty")
	}
	if invoiceNumber == "" {
		return nil, shared.NewValidationError("Invoice number cannot be empty")
	}
	if !invoiceType.IsValid() {
		return nil, shared.NewValidationError("Invalid invoice type")
	}
	if !currency.IsSupported() {
		return nil, shared.ErrUnsupportedCurrency
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("Invoice must have at least one line item")
	}
	if discountAmount.IsNegative() {
		return nil, shared.NewValidationError("Discount amount cannot be negative")
	}
	for _, item := range items {
		if item.Rate.Currency() != currency {
			return nil, shared.NewValidationError("Line item currency does not match invoice currency")
		}
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	discount, err := valueobject.NewMoney(discountAmount, currency)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	inv := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceNumber:       invoiceNumber,
		Type:                invoiceType,
		Status:              StatusDraft,
		Currency:            currency,
		Vendor:              vendor,
		Customer:            customer,
		Items:               items,
		DiscountAmount:      discount.Round(2),
		AmountPaid:          valueobject.Zero(currency),
		IssueDate:           issueDate,
		DueDate:             dueDate,
	}
	inv.recalculate()
	return inv, nil
}

// recalculate recomputes the derived totals from the line items. It is the
// single place these fields are assigned outside of payment application.
func (inv *Invoice) recalculate() {
	subtotal := valueobject.Zero(inv.Currency)
	tax := valueobject.Zero(inv.Currency)
	for _, item := range inv.Items {
		subtotal = subtotal.MustAdd(item.Amount)
		tax = tax.MustAdd(item.TaxAmount)
	}
	inv.Subtotal = subtotal.Round(2)
	inv.TaxAmount = tax.Round(2)
	inv.Total = inv.Subtotal.MustAdd(inv.TaxAmount).MustSubtract(inv.DiscountAmount).Round(2)
	inv.BalanceDue = inv.Total.MustSubtract(inv.AmountPaid).Round(2)
}

// IsPaid returns true if the invoice has been fully settled
func (inv *Invoice) IsPaid() bool {
	return inv.Status == StatusPaid
}

// IsMutable reports whether business-field edits are still allowed.
// Paid invoices are locked; only payment reversal can reopen them.
func (inv *Invoice) IsMutable() bool {
	return inv.Status != StatusPaid
}

// SetStatus sets the lifecycle status. Membership in the enum is the only
// rule enforced here; any status may follow any other. Timestamps for
// sent/viewed/paid are stamped on first entry.
func (inv *Invoice) SetStatus(status InvoiceStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("Invalid invoice status: " + string(status))
	}
	now := time.Now()
	switch status {
	case StatusSent:
		if inv.SentAt == nil {
			inv.SentAt = &now
		}
	case StatusViewed:
		if inv.ViewedAt == nil {
			inv.ViewedAt = &now
		}
	case StatusPaid:
		if inv.PaidAt == nil {
			inv.PaidAt = &now
		}
	}
	inv.Status = status
	inv.UpdatedAt = now
	inv.IncrementVersion()
	return nil
}

// MarkSent records dispatch of the invoice to the customer
func (inv *Invoice) MarkSent() error {
	return inv.SetStatus(StatusSent)
}

// MarkViewed records that the recipient opened the invoice. Open tracking
// only upgrades sent invoices; every other status is left untouched.
func (inv *Invoice) MarkViewed() {
	if inv.Status != StatusSent {
		return
	}
	now := time.Now()
	inv.Status = StatusViewed
	if inv.ViewedAt == nil {
		inv.ViewedAt = &now
	}
	inv.UpdatedAt = now
	inv.IncrementVersion()
}

// MarkOverdue flips a dispatched invoice to overdue when its due date has
// passed and a balance remains. Returns true if the status changed.
func (inv *Invoice) MarkOverdue(asOf time.Time) bool {
	if inv.Status != StatusSent && inv.Status != StatusViewed {
		return false
	}
	if inv.DueDate == nil || !inv.DueDate.Before(asOf) {
		return false
	}
	if !inv.BalanceDue.IsPositive() {
		return false
	}
	inv.Status = StatusOverdue
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return true
}

// UpdateDetails patches the non-financial fields. Totals are untouched;
// item changes go through ReplaceItems.
func (inv *Invoice) UpdateDetails(notes string, issueDate time.Time, dueDate *time.Time, customer *PartySnapshot) error {
	if !inv.IsMutable() {
		return shared.NewInvalidOperationError("Paid invoices cannot be modified")
	}
	inv.Notes = notes
	if !issueDate.IsZero() {
		inv.IssueDate = issueDate
	}
	inv.DueDate = dueDate
	if customer != nil {
		inv.Customer = *customer
	}
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// ReplaceItems swaps the line items and recomputes every derived total.
// This is the dedicated update path guarding the arithmetic invariants.
func (inv *Invoice) ReplaceItems(items []InvoiceItem, discountAmount decimal.Decimal) error {
	if !inv.IsMutable() {
		return shared.NewInvalidOperationError("Paid invoices cannot be modified")
	}
	if len(items) == 0 {
		return shared.NewValidationError("Invoice must have at least one line item")
	}
	if discountAmount.IsNegative() {
		return shared.NewValidationError("Discount amount cannot be negative")
	}
	for _, item := range items {
		if item.Rate.Currency() != inv.Currency {
			return shared.NewValidationError("Line item currency does not match invoice currency")
		}
	}
	discount, err := valueobject.NewMoney(discountAmount, inv.Currency)
	if err != nil {
		return shared.NewValidationError(err.Error())
	}

	subtotal := valueobject.Zero(inv.Currency)
	tax := valueobject.Zero(inv.Currency)
	for _, item := range items {
		subtotal = subtotal.MustAdd(item.Amount)
		tax = tax.MustAdd(item.TaxAmount)
	}
	total := subtotal.MustAdd(tax).MustSubtract(discount).Round(2)

	// Recorded payments must still fit under the new total
	if exceeded, _ := inv.AmountPaid.GreaterThan(total); exceeded {
		return shared.NewInvalidOperationError("Recorded payments exceed the new invoice total")
	}

	inv.Items = items
	inv.DiscountAmount = discount.Round(2)
	inv.recalculate()
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// ApplyPayment applies a payment amount against the outstanding balance.
// Preconditions are checked in order: positive amount, matching currency,
// amount within the balance due. Reaching a zero balance settles the
// invoice; a partial payment leaves the current status untouched.
func (inv *Invoice) ApplyPayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.ErrInvalidAmount
	}
	if amount.Currency() != inv.Currency {
		return shared.NewValidationError("Payment currency does not match invoice currency")
	}
	exceeds, err := amount.GreaterThan(inv.BalanceDue)
	if err != nil {
		return shared.NewValidationError(err.Error())
	}
	if exceeds {
		return shared.ErrAmountExceedsDue
	}

	inv.AmountPaid = inv.AmountPaid.MustAdd(amount).Round(2)
	inv.BalanceDue = inv.Total.MustSubtract(inv.AmountPaid).Round(2)

	if !inv.BalanceDue.IsPositive() {
		now := time.Now()
		inv.Status = StatusPaid
		inv.PaidAt = &now
	}

	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// RevertPayment removes a previously applied payment amount. A settled
// invoice whose balance reopens reverts to sent, reflecting that it had
// already been dispatched.
func (inv *Invoice) RevertPayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.ErrInvalidAmount
	}
	if amount.Currency() != inv.Currency {
		return shared.NewValidationError("Payment currency does not match invoice currency")
	}
	newPaid, err := inv.AmountPaid.Subtract(amount)
	if err != nil {
		return shared.NewValidationError(err.Error())
	}
	if newPaid.IsNegative() {
		newPaid = valueobject.Zero(inv.Currency)
	}

	wasPaid := inv.Status == StatusPaid
	inv.AmountPaid = newPaid.Round(2)
	inv.BalanceDue = inv.Total.MustSubtract(inv.AmountPaid).Round(2)

	if wasPaid && inv.BalanceDue.IsPositive() {
		inv.Status = StatusSent
		inv.PaidAt = nil
	}

	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}
