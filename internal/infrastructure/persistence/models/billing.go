package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// money tags a stored decimal amount with its row's currency
func money(amount decimal.Decimal, currency valueobject.Currency) valueobject.Money {
	m, _ := valueobject.NewMoney(amount, currency)
	return m
}

// InvoiceModel is the persistence model for the Invoice aggregate root.
// Line items and party snapshots are stored as JSONB documents on the row;
// the derived totals are denormalized into their own columns so list and
// sweep queries never have to parse the items.
//
// Rows are soft deleted. A deleted invoice keeps its payment ledger and
// drops out of every query through the DeletedAt scope; the partial unique
// index frees its number for reuse within the tenant.
type InvoiceModel struct {
	AggregateModel
	DeletedAt      gorm.DeletedAt        `gorm:"index"`
	TenantID       uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_invoice_tenant_number,priority:1,where:deleted_at IS NULL"`
	InvoiceNumber  string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_tenant_number,priority:2"`
	Type           billing.InvoiceType   `gorm:"type:varchar(20);not null;default:'invoice';index"`
	Status         billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Currency       valueobject.Currency  `gorm:"type:varchar(3);not null"`
	Vendor         billing.PartySnapshot `gorm:"type:jsonb"`
	Customer       billing.PartySnapshot `gorm:"type:jsonb"`
	Items          billing.InvoiceItems  `gorm:"type:jsonb;not null;default:'[]'"`
	Subtotal       decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	TaxAmount      decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	DiscountAmount decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Total          decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	AmountPaid     decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	BalanceDue     decimal.Decimal       `gorm:"type:decimal(18,2);not null;index"`
	Notes          string                `gorm:"type:text"`
	IssueDate      time.Time             `gorm:"not null;index"`
	DueDate        *time.Time            `gorm:"index"`
	SentAt         *time.Time
	ViewedAt       *time.Time
	PaidAt         *time.Time
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		InvoiceNumber:  m.InvoiceNumber,
		Type:           m.Type,
		Status:         m.Status,
		Currency:       m.Currency,
		Vendor:         m.Vendor,
		Customer:       m.Customer,
		Items:          m.Items,
		Subtotal:       money(m.Subtotal, m.Currency),
		TaxAmount:      money(m.TaxAmount, m.Currency),
		DiscountAmount: money(m.DiscountAmount, m.Currency),
		Total:          money(m.Total, m.Currency),
		AmountPaid:     money(m.AmountPaid, m.Currency),
		BalanceDue:     money(m.BalanceDue, m.Currency),
		Notes:          m.Notes,
		IssueDate:      m.IssueDate,
		DueDate:        m.DueDate,
		SentAt:         m.SentAt,
		ViewedAt:       m.ViewedAt,
		PaidAt:         m.PaidAt,
	}
	inv.BaseAggregateRoot.BaseEntity.ID = m.ID
	inv.BaseAggregateRoot.BaseEntity.CreatedAt = m.CreatedAt
	inv.BaseAggregateRoot.BaseEntity.UpdatedAt = m.UpdatedAt
	inv.BaseAggregateRoot.Version = m.Version
	inv.TenantID = m.TenantID
	return inv
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.TenantID = inv.TenantID
	m.InvoiceNumber = inv.InvoiceNumber
	m.Type = inv.Type
	m.Status = inv.Status
	m.Currency = inv.Currency
	m.Vendor = inv.Vendor
	m.Customer = inv.Customer
	m.Items = inv.Items
	m.Subtotal = inv.Subtotal.Amount()
	m.TaxAmount = inv.TaxAmount.Amount()
	m.DiscountAmount = inv.DiscountAmount.Amount()
	m.Total = inv.Total.Amount()
	m.AmountPaid = inv.AmountPaid.Amount()
	m.BalanceDue = inv.BalanceDue.Amount()
	m.Notes = inv.Notes
	m.IssueDate = inv.IssueDate
	m.DueDate = inv.DueDate
	m.SentAt = inv.SentAt
	m.ViewedAt = inv.ViewedAt
	m.PaidAt = inv.PaidAt
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// PaymentModel is the persistence model for a payment ledger row.
type PaymentModel struct {
	BaseModel
	TenantID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	InvoiceID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Currency        valueobject.Currency  `gorm:"type:varchar(3);not null"`
	Method          billing.PaymentMethod `gorm:"type:varchar(20);not null"`
	ReferenceNumber string                `gorm:"type:varchar(100)"`
	Notes           string                `gorm:"type:text"`
	PaymentDate     time.Time             `gorm:"not null;index"`
	RecordedBy      string                `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity:      m.BaseModel.ToDomain(),
		TenantID:        m.TenantID,
		InvoiceID:       m.InvoiceID,
		Amount:          money(m.Amount, m.Currency),
		Method:          m.Method,
		ReferenceNumber: m.ReferenceNumber,
		Notes:           m.Notes,
		PaymentDate:     m.PaymentDate,
		RecordedBy:      m.RecordedBy,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.TenantID = p.TenantID
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount.Amount()
	m.Currency = p.Amount.Currency()
	m.Method = p.Method
	m.ReferenceNumber = p.ReferenceNumber
	m.Notes = p.Notes
	m.PaymentDate = p.PaymentDate
	m.RecordedBy = p.RecordedBy
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
