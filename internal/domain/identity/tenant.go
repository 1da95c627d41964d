package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// TenantPlan represents the subscription tier of a tenant
type TenantPlan string

const (
	TenantPlanFree       TenantPlan = "free"
	TenantPlanPro        TenantPlan = "pro"
	TenantPlanEnterprise TenantPlan = "enterprise"
)

// IsValid returns true if the plan is a member of the enum
func (p TenantPlan) IsValid() bool {
	switch p {
	case TenantPlanFree, TenantPlanPro, TenantPlanEnterprise:
		return true
	}
	return false
}

// AssistQuota returns the monthly AI assist call allowance for the plan
func (p TenantPlan) AssistQuota() int {
	switch p {
	case TenantPlanPro:
		return 200
	case TenantPlanEnterprise:
		return 2000
	default:
		return 10
	}
}

// NumberingConfig holds the tenant's invoice numbering settings
type NumberingConfig struct {
	InvoicePrefix      string `json:"invoice_prefix"`
	InvoiceStartNumber int    `json:"invoice_start_number"`
}

// DefaultNumberingConfig returns the numbering settings for a new tenant
func DefaultNumberingConfig() NumberingConfig {
	return NumberingConfig{
		InvoicePrefix:      billing.DefaultInvoicePrefix,
		InvoiceStartNumber: billing.DefaultStartNumber,
	}
}

// Tenant represents a company account, the unit of data isolation.
// Every other aggregate in the system is scoped to exactly one tenant.
type Tenant struct {
	shared.BaseAggregateRoot
	Slug      string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string               `gorm:"type:varchar(200);not null"`
	Status    TenantStatus         `gorm:"type:varchar(20);not null;default:'active'"`
	Plan      TenantPlan           `gorm:"type:varchar(20);not null;default:'free'"`
	Currency  valueobject.Currency `gorm:"type:varchar(3);not null;default:'USD'"`
	Email     string               `gorm:"type:varchar(200)"`
	Numbering NumberingConfig      `gorm:"embedded;embeddedPrefix:numbering_"`
	Notes     string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,48}[a-z0-9]$`)

// NewTenant creates a new active tenant on the free plan
func NewTenant(slug, name string, currency valueobject.Currency) (*Tenant, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	name = strings.TrimSpace(name)
	if !slugPattern.MatchString(slug) {
		return nil, shared.NewValidationError("Tenant slug must be 3-50 lowercase letters, digits or dashes")
	}
	if name == "" || len(name) > 200 {
		return nil, shared.NewValidationError("Tenant name must be 1-200 characters")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !currency.IsSupported() {
		return nil, shared.ErrUnsupportedCurrency
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Slug:              slug,
		Name:              name,
		Status:            TenantStatusActive,
		Plan:              TenantPlanFree,
		Currency:          currency,
		Numbering:         DefaultNumberingConfig(),
	}, nil
}

// Update patches the tenant's profile fields
func (t *Tenant) Update(name, email, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewValidationError("Tenant name must be 1-200 characters")
	}
	t.Name = name
	t.Email = strings.TrimSpace(email)
	t.Notes = notes
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// SetNumbering updates the invoice numbering configuration. Already issued
// numbers are unaffected; the allocator picks the new settings up on the
// next allocation.
func (t *Tenant) SetNumbering(prefix string, startNumber int) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = billing.DefaultInvoicePrefix
	}
	if len(prefix) > 20 {
		return shared.NewValidationError("Invoice prefix cannot exceed 20 characters")
	}
	if startNumber <= 0 {
		startNumber = billing.DefaultStartNumber
	}
	t.Numbering = NumberingConfig{InvoicePrefix: prefix, InvoiceStartNumber: startNumber}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// ChangePlan moves the tenant to a different subscription tier
func (t *Tenant) ChangePlan(plan TenantPlan) error {
	if !plan.IsValid() {
		return shared.NewValidationError("Invalid subscription plan: " + string(plan))
	}
	t.Plan = plan
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Suspend blocks the tenant from mutating operations
func (t *Tenant) Suspend() {
	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// Activate restores a suspended tenant
func (t *Tenant) Activate() {
	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// IsActive reports whether the tenant may perform mutating operations
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}
