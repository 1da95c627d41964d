package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/partner"
)

// AddressRequest carries postal address fields
type AddressRequest struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CreateVendorRequest creates a vendor billing profile
type CreateVendorRequest struct {
	Name           string          `json:"name" binding:"required"`
	Email          string          `json:"email" binding:"omitempty,email"`
	Phone          string          `json:"phone"`
	Address        *AddressRequest `json:"address"`
	TaxID          string          `json:"tax_id"`
	PaymentDetails string          `json:"payment_details"`
	HeaderText     string          `json:"header_text"`
	FooterText     string          `json:"footer_text"`
	LogoURL        string          `json:"logo_url"`
}

// UpdateVendorRequest patches a vendor billing profile
type UpdateVendorRequest struct {
	Name           *string         `json:"name"`
	Email          *string         `json:"email" binding:"omitempty,email"`
	Phone          *string         `json:"phone"`
	Address        *AddressRequest `json:"address"`
	TaxID          *string         `json:"tax_id"`
	PaymentDetails *string         `json:"payment_details"`
	HeaderText     *string         `json:"header_text"`
	FooterText     *string         `json:"footer_text"`
	LogoURL        *string         `json:"logo_url"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        []string  `json:"address,omitempty"`
	TaxID          string    `json:"tax_id,omitempty"`
	PaymentDetails string    `json:"payment_details,omitempty"`
	HeaderText     string    `json:"header_text,omitempty"`
	FooterText     string    `json:"footer_text,omitempty"`
	LogoURL        string    `json:"logo_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toVendorResponse(vendor *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:             vendor.ID,
		Name:           vendor.Name,
		Email:          vendor.Email,
		Phone:          vendor.Phone,
		Address:        vendor.Address.Lines(),
		TaxID:          vendor.TaxID,
		PaymentDetails: vendor.PaymentDetails,
		HeaderText:     vendor.HeaderText,
		FooterText:     vendor.FooterText,
		LogoURL:        vendor.LogoURL,
		CreatedAt:      vendor.CreatedAt,
		UpdatedAt:      vendor.UpdatedAt,
	}
}
