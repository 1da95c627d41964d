package models

import (
	"github.com/invoicehub/backend/internal/domain/templating"
)

// InvoiceTemplateModel is the persistence model for tenant-custom invoice
// templates. Builtin templates ship with the binary and never hit this table.
type InvoiceTemplateModel struct {
	TenantAggregateModel
	Name         string                    `gorm:"type:varchar(100);not null"`
	Layout       templating.TemplateLayout `gorm:"type:varchar(20);not null;default:'classic'"`
	PrimaryColor string                    `gorm:"type:varchar(7)"`
	FontFamily   string                    `gorm:"type:varchar(100)"`
	Description  string                    `gorm:"type:text"`
	IsDefault    bool                      `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (InvoiceTemplateModel) TableName() string {
	return "invoice_templates"
}

// ToDomain converts the persistence model to a domain InvoiceTemplate entity.
func (m *InvoiceTemplateModel) ToDomain() *templating.InvoiceTemplate {
	t := &templating.InvoiceTemplate{
		Name:         m.Name,
		Layout:       m.Layout,
		PrimaryColor: m.PrimaryColor,
		FontFamily:   m.FontFamily,
		Description:  m.Description,
		IsDefault:    m.IsDefault,
	}
	m.PopulateTenantAggregateRoot(&t.TenantAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain InvoiceTemplate entity.
func (m *InvoiceTemplateModel) FromDomain(t *templating.InvoiceTemplate) {
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	m.Name = t.Name
	m.Layout = t.Layout
	m.PrimaryColor = t.PrimaryColor
	m.FontFamily = t.FontFamily
	m.Description = t.Description
	m.IsDefault = t.IsDefault
}

// InvoiceTemplateModelFromDomain creates a new persistence model from a domain InvoiceTemplate.
func InvoiceTemplateModelFromDomain(t *templating.InvoiceTemplate) *InvoiceTemplateModel {
	m := &InvoiceTemplateModel{}
	m.FromDomain(t)
	return m
}
