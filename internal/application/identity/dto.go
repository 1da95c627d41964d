package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/identity"
)

// CreateTenantRequest provisions a new tenant account
type CreateTenantRequest struct {
	Slug     string `json:"slug" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency"`
	Email    string `json:"email" binding:"omitempty,email"`
	Plan     string `json:"plan"`
}

// UpdateTenantRequest patches a tenant's profile
type UpdateTenantRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Notes *string `json:"notes"`
}

// UpdateNumberingRequest changes the tenant's invoice numbering settings
type UpdateNumberingRequest struct {
	InvoicePrefix      string `json:"invoice_prefix"`
	InvoiceStartNumber int    `json:"invoice_start_number" binding:"gte=0"`
}

// ChangePlanRequest moves the tenant to a different subscription tier
type ChangePlanRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// NumberingResponse represents the tenant's numbering settings
type NumberingResponse struct {
	InvoicePrefix      string `json:"invoice_prefix"`
	InvoiceStartNumber int    `json:"invoice_start_number"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID          uuid.UUID         `json:"id"`
	Slug        string            `json:"slug"`
	Name        string            `json:"name"`
	Status      string            `json:"status"`
	Plan        string            `json:"plan"`
	AssistQuota int               `json:"assist_quota"`
	Currency    string            `json:"currency"`
	Email       string            `json:"email,omitempty"`
	Numbering   NumberingResponse `json:"numbering"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func toTenantResponse(tenant *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:          tenant.ID,
		Slug:        tenant.Slug,
		Name:        tenant.Name,
		Status:      string(tenant.Status),
		Plan:        string(tenant.Plan),
		AssistQuota: tenant.Plan.AssistQuota(),
		Currency:    string(tenant.Currency),
		Email:       tenant.Email,
		Numbering: NumberingResponse{
			InvoicePrefix:      tenant.Numbering.InvoicePrefix,
			InvoiceStartNumber: tenant.Numbering.InvoiceStartNumber,
		},
		Notes:     tenant.Notes,
		CreatedAt: tenant.CreatedAt,
		UpdatedAt: tenant.UpdatedAt,
	}
}
