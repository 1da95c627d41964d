package models

import (
	"github.com/invoicehub/backend/internal/domain/partner"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// VendorModel is the persistence model for the Vendor aggregate root.
// The address is stored as a JSONB document.
type VendorModel struct {
	TenantAggregateModel
	Name           string              `gorm:"type:varchar(200);not null"`
	Email          string              `gorm:"type:varchar(200);index"`
	Phone          string              `gorm:"type:varchar(50)"`
	Address        valueobject.Address `gorm:"type:jsonb"`
	TaxID          string              `gorm:"type:varchar(50)"`
	PaymentDetails string              `gorm:"type:text"`
	HeaderText     string              `gorm:"type:text"`
	FooterText     string              `gorm:"type:text"`
	LogoURL        string              `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor entity.
func (m *VendorModel) ToDomain() *partner.Vendor {
	v := &partner.Vendor{
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		Address:        m.Address,
		TaxID:          m.TaxID,
		PaymentDetails: m.PaymentDetails,
		HeaderText:     m.HeaderText,
		FooterText:     m.FooterText,
		LogoURL:        m.LogoURL,
	}
	m.PopulateTenantAggregateRoot(&v.TenantAggregateRoot)
	return v
}

// FromDomain populates the persistence model from a domain Vendor entity.
func (m *VendorModel) FromDomain(v *partner.Vendor) {
	m.FromDomainTenantAggregateRoot(v.TenantAggregateRoot)
	m.Name = v.Name
	m.Email = v.Email
	m.Phone = v.Phone
	m.Address = v.Address
	m.TaxID = v.TaxID
	m.PaymentDetails = v.PaymentDetails
	m.HeaderText = v.HeaderText
	m.FooterText = v.FooterText
	m.LogoURL = v.LogoURL
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor.
func VendorModelFromDomain(v *partner.Vendor) *VendorModel {
	m := &VendorModel{}
	m.FromDomain(v)
	return m
}
