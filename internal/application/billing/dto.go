package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/billing"
)

// ===================== Requests =====================

// InvoiceItemRequest is one line item in a create or update request
type InvoiceItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	Rate        float64 `json:"rate" binding:"gte=0"`
	Taxable     bool    `json:"taxable"`
	TaxRate     float64 `json:"tax_rate" binding:"gte=0"`
}

// PartyRequest carries the customer fields frozen into the invoice
type PartyRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	TaxID        string `json:"tax_id"`
}

// CreateInvoiceRequest creates a draft invoice. The invoice number is
// allocated from the tenant's numbering config unless supplied manually.
type CreateInvoiceRequest struct {
	VendorID       *uuid.UUID           `json:"vendor_id"`
	Customer       PartyRequest         `json:"customer" binding:"required"`
	Items          []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	Type           string               `json:"type"`
	Currency       string               `json:"currency"`
	InvoiceNumber  string               `json:"invoice_number"`
	DiscountAmount float64              `json:"discount_amount" binding:"gte=0"`
	Notes          string               `json:"notes"`
	IssueDate      *time.Time           `json:"issue_date"`
	DueDate        *time.Time           `json:"due_date"`
}

// UpdateInvoiceRequest patches an invoice. Items, when present, replace the
// whole line set and retrigger the totals computation; every other field
// leaves the money columns alone.
type UpdateInvoiceRequest struct {
	Notes          *string              `json:"notes"`
	IssueDate      *time.Time           `json:"issue_date"`
	DueDate        *time.Time           `json:"due_date"`
	Customer       *PartyRequest        `json:"customer"`
	Items          []InvoiceItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	DiscountAmount *float64             `json:"discount_amount" binding:"omitempty,gte=0"`
}

// SetStatusRequest sets the invoice lifecycle status
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RecordPaymentRequest appends a payment to an invoice's ledger
type RecordPaymentRequest struct {
	Amount          float64    `json:"amount" binding:"required"`
	Method          string     `json:"method" binding:"required"`
	PaymentDate     *time.Time `json:"payment_date"`
	ReferenceNumber string     `json:"reference_number"`
	Notes           string     `json:"notes"`
	RecordedBy      string     `json:"recorded_by"`
}

// InvoiceListFilter defines filtering options for invoice list queries
type InvoiceListFilter struct {
	Status   string     `form:"status"`
	Type     string     `form:"type"`
	Customer string     `form:"customer"`
	FromDate *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir"`
}

// ===================== Responses =====================

// InvoiceItemResponse represents a line item in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Taxable     bool            `json:"taxable"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

// PartyResponse represents a frozen party snapshot in API responses
type PartyResponse struct {
	Name    string   `json:"name"`
	Email   string   `json:"email,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Address []string `json:"address,omitempty"`
	TaxID   string   `json:"tax_id,omitempty"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	TenantID       uuid.UUID             `json:"tenant_id"`
	InvoiceNumber  string                `json:"invoice_number"`
	Type           string                `json:"type"`
	Status         string                `json:"status"`
	Currency       string                `json:"currency"`
	Vendor         PartyResponse         `json:"vendor"`
	Customer       PartyResponse         `json:"customer"`
	Items          []InvoiceItemResponse `json:"items"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	Total          decimal.Decimal       `json:"total"`
	AmountPaid     decimal.Decimal       `json:"amount_paid"`
	BalanceDue     decimal.Decimal       `json:"balance_due"`
	Notes          string                `json:"notes,omitempty"`
	IssueDate      time.Time             `json:"issue_date"`
	DueDate        *time.Time            `json:"due_date,omitempty"`
	SentAt         *time.Time            `json:"sent_at,omitempty"`
	ViewedAt       *time.Time            `json:"viewed_at,omitempty"`
	PaidAt         *time.Time            `json:"paid_at,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Version        int                   `json:"version"`
}

// PaymentResponse represents a ledger row in API responses
type PaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Method          string          `json:"method"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	PaymentDate     time.Time       `json:"payment_date"`
	RecordedBy      string          `json:"recorded_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// LedgerSummaryResponse mirrors the invoice's denormalized balance fields
type LedgerSummaryResponse struct {
	InvoiceTotal decimal.Decimal `json:"invoice_total"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalDue     decimal.Decimal `json:"total_due"`
	PaymentCount int             `json:"payment_count"`
}

// RecordPaymentResponse pairs the new ledger row with the updated invoice
type RecordPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
}

// ListPaymentsResponse pairs the ledger rows with the invoice summary
type ListPaymentsResponse struct {
	Payments []PaymentResponse     `json:"payments"`
	Summary  LedgerSummaryResponse `json:"summary"`
}

// ===================== Mapping =====================

func toInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, InvoiceItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate.Amount(),
			Amount:      item.Amount.Amount(),
			Taxable:     item.Taxable,
			TaxRate:     item.TaxRate,
			TaxAmount:   item.TaxAmount.Amount(),
		})
	}

	return InvoiceResponse{
		ID:             inv.ID,
		TenantID:       inv.TenantID,
		InvoiceNumber:  inv.InvoiceNumber,
		Type:           string(inv.Type),
		Status:         string(inv.Status),
		Currency:       string(inv.Currency),
		Vendor:         toPartyResponse(inv.Vendor),
		Customer:       toPartyResponse(inv.Customer),
		Items:          items,
		Subtotal:       inv.Subtotal.Amount(),
		TaxAmount:      inv.TaxAmount.Amount(),
		DiscountAmount: inv.DiscountAmount.Amount(),
		Total:          inv.Total.Amount(),
		AmountPaid:     inv.AmountPaid.Amount(),
		BalanceDue:     inv.BalanceDue.Amount(),
		Notes:          inv.Notes,
		IssueDate:      inv.IssueDate,
		DueDate:        inv.DueDate,
		SentAt:         inv.SentAt,
		ViewedAt:       inv.ViewedAt,
		PaidAt:         inv.PaidAt,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
		Version:        inv.Version,
	}
}

func toPartyResponse(p billing.PartySnapshot) PartyResponse {
	return PartyResponse{
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address.Lines(),
		TaxID:   p.TaxID,
	}
}

func toPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount.Amount(),
		Currency:        string(p.Amount.Currency()),
		Method:          string(p.Method),
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
		PaymentDate:     p.PaymentDate,
		RecordedBy:      p.RecordedBy,
		CreatedAt:       p.CreatedAt,
	}
}
