package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// Vendor is a billing counterparty of the tenant: the party whose name,
// address and payment details appear on invoices. Invoices freeze a
// snapshot of this profile at creation time, so edits here never alter
// documents already issued.
type Vendor struct {
	shared.TenantAggregateRoot
	Name           string
	Email          string
	Phone          string
	Address        valueobject.Address
	TaxID          string
	PaymentDetails string
	HeaderText     string
	FooterText     string
	LogoURL        string
}

// NewVendor creates a vendor profile for a tenant
func NewVendor(tenantID uuid.UUID, name, email string) (*Vendor, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("Tenant ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewValidationError("Vendor name must be 1-200 characters")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	return &Vendor{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Email:               email,
	}, nil
}

// Update patches the vendor profile
func (v *Vendor) Update(name, email, phone, taxID, paymentDetails, headerText, footerText, logoURL string, address valueobject.Address) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewValidationError("Vendor name must be 1-200 characters")
	}
	v.Name = name
	v.Email = strings.ToLower(strings.TrimSpace(email))
	v.Phone = strings.TrimSpace(phone)
	v.TaxID = strings.TrimSpace(taxID)
	v.PaymentDetails = paymentDetails
	v.HeaderText = headerText
	v.FooterText = footerText
	v.LogoURL = strings.TrimSpace(logoURL)
	v.Address = address
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// Snapshot produces the point-in-time copy frozen into an invoice
func (v *Vendor) Snapshot() billing.PartySnapshot {
	return billing.PartySnapshot{
		Name:    v.Name,
		Email:   v.Email,
		Phone:   v.Phone,
		Address: v.Address,
		TaxID:   v.TaxID,
		Header:  v.HeaderText,
		Footer:  v.FooterText,
	}
}
