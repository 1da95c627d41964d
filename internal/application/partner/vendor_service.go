package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicehub/backend/internal/domain/partner"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// VendorService manages tenant vendor billing profiles
type VendorService struct {
	vendorRepo partner.VendorRepository
	logger     *zap.Logger
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository, logger *zap.Logger) *VendorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VendorService{
		vendorRepo: vendorRepo,
		logger:     logger,
	}
}

// CreateVendor creates a vendor billing profile for the tenant
func (s *VendorService) CreateVendor(ctx context.Context, tenantID uuid.UUID, req CreateVendorRequest) (*VendorResponse, error) {
	if req.Email != "" {
		exists, err := s.vendorRepo.ExistsByEmailForTenant(ctx, tenantID, req.Email, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflictError("A vendor with this email already exists")
		}
	}

	vendor, err := partner.NewVendor(tenantID, req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	address, err := toAddress(req.Address)
	if err != nil {
		return nil, err
	}
	if err := vendor.Update(req.Name, req.Email, req.Phone, req.TaxID,
		req.PaymentDetails, req.HeaderText, req.FooterText, req.LogoURL, address); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	s.logger.Info("vendor created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("vendor_id", vendor.ID.String()))

	resp := toVendorResponse(vendor)
	return &resp, nil
}

// GetVendor fetches a vendor for the tenant
func (s *VendorService) GetVendor(ctx context.Context, tenantID, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := toVendorResponse(vendor)
	return &resp, nil
}

// ListVendors lists the tenant's vendors
func (s *VendorService) ListVendors(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]VendorResponse, error) {
	vendors, err := s.vendorRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]VendorResponse, 0, len(vendors))
	for i := range vendors {
		responses = append(responses, toVendorResponse(&vendors[i]))
	}
	return responses, nil
}

// UpdateVendor patches a vendor profile. Invoices already issued keep the
// snapshot they froze at creation time.
func (s *VendorService) UpdateVendor(ctx context.Context, tenantID, id uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	name := vendor.Name
	if req.Name != nil {
		name = *req.Name
	}
	email := vendor.Email
	if req.Email != nil {
		email = *req.Email
	}
	if email != "" && email != vendor.Email {
		exists, err := s.vendorRepo.ExistsByEmailForTenant(ctx, tenantID, email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflictError("A vendor with this email already exists")
		}
	}

	phone := vendor.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	taxID := vendor.TaxID
	if req.TaxID != nil {
		taxID = *req.TaxID
	}
	paymentDetails := vendor.PaymentDetails
	if req.PaymentDetails != nil {
		paymentDetails = *req.PaymentDetails
	}
	headerText := vendor.HeaderText
	if req.HeaderText != nil {
		headerText = *req.HeaderText
	}
	footerText := vendor.FooterText
	if req.FooterText != nil {
		footerText = *req.FooterText
	}
	logoURL := vendor.LogoURL
	if req.LogoURL != nil {
		logoURL = *req.LogoURL
	}
	address := vendor.Address
	if req.Address != nil {
		address, err = toAddress(req.Address)
		if err != nil {
			return nil, err
		}
	}

	if err := vendor.Update(name, email, phone, taxID, paymentDetails,
		headerText, footerText, logoURL, address); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	resp := toVendorResponse(vendor)
	return &resp, nil
}

// DeleteVendor soft deletes a vendor profile
func (s *VendorService) DeleteVendor(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.vendorRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	s.logger.Info("vendor deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("vendor_id", id.String()))
	return nil
}

func toAddress(req *AddressRequest) (valueobject.Address, error) {
	if req == nil || req.Line1 == "" {
		return valueobject.EmptyAddress(), nil
	}
	address, err := valueobject.NewAddress(req.Line1, req.City,
		valueobject.WithLine2(req.Line2),
		valueobject.WithState(req.State),
		valueobject.WithPostalCode(req.PostalCode),
		valueobject.WithCountry(req.Country))
	if err != nil {
		return valueobject.EmptyAddress(), shared.NewValidationError(err.Error())
	}
	return address, nil
}
