package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// PaymentMethod is the channel a payment arrived through
type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCard         PaymentMethod = "card"
	MethodCash         PaymentMethod = "cash"
	MethodCheck        PaymentMethod = "check"
	MethodOther        PaymentMethod = "other"
)

// String returns the string representation of the method
func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid returns true if the method is a member of the enum
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodBankTransfer, MethodCard, MethodCash, MethodCheck, MethodOther:
		return true
	}
	return false
}

// Payment is one row in an invoice's payment ledger. Payments are only
// created through PaymentService.RecordPayment and only removed through
// DeletePayment, both of which update the owning invoice in the same
// transaction.
type Payment struct {
	shared.BaseEntity
	TenantID        uuid.UUID
	InvoiceID       uuid.UUID
	Amount          valueobject.Money
	Method          PaymentMethod
	ReferenceNumber string
	Notes           string
	PaymentDate     time.Time
	RecordedBy      string
}

// NewPayment creates a ledger entry. The amount is validated here for
// shape only; the balance check happens on the invoice aggregate.
func NewPayment(
	tenantID, invoiceID uuid.UUID,
	amount valueobject.Money,
	method PaymentMethod,
	paymentDate time.Time,
	referenceNumber, notes, recordedBy string,
) (*Payment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("Tenant ID cannot be empty")
	}
	if invoiceID == uuid.Nil {
		return nil, shared.NewValidationError("Invoice ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("Invalid payment method: " + string(method))
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &Payment{
		BaseEntity:      shared.NewBaseEntity(),
		TenantID:        tenantID,
		InvoiceID:       invoiceID,
		Amount:          amount.Round(2),
		Method:          method,
		ReferenceNumber: strings.TrimSpace(referenceNumber),
		Notes:           strings.TrimSpace(notes),
		PaymentDate:     paymentDate,
		RecordedBy:      strings.TrimSpace(recordedBy),
	}, nil
}

// LedgerSummary mirrors the invoice's denormalized balance fields at the
// time of a ledger read. It is reported from the invoice row, not re-summed
// from payment rows.
type LedgerSummary struct {
	InvoiceTotal valueobject.Money `json:"invoice_total"`
	TotalPaid    valueobject.Money `json:"total_paid"`
	TotalDue     valueobject.Money `json:"total_due"`
	PaymentCount int               `json:"payment_count"`
}
