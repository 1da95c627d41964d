package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/invoicehub/backend/internal/application/partner"
	"github.com/invoicehub/backend/internal/domain/shared"
)

// VendorHandler handles the vendor billing profile endpoints. Each tenant
// keeps a single vendor profile that is frozen into invoices at creation.
type VendorHandler struct {
	BaseHandler
	vendorService *partnerapp.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *partnerapp.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// Get godoc
// @Summary      Get the vendor billing profile
// @Tags         vendor
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Success      200 {object} dto.Response{data=partnerapp.VendorResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendor [get]
func (h *VendorHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	vendors, err := h.vendorService.ListVendors(c.Request.Context(), tenantID, shared.Filter{PageSize: 1})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if len(vendors) == 0 {
		h.NotFound(c, "Vendor profile not configured")
		return
	}

	h.Success(c, vendors[0])
}

// Upsert godoc
// @Summary      Create or replace the vendor billing profile
// @Tags         vendor
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body partnerapp.CreateVendorRequest true "Vendor profile"
// @Success      200 {object} dto.Response{data=partnerapp.VendorResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendor [put]
func (h *VendorHandler) Upsert(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req partnerapp.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()

	existing, err := h.vendorService.ListVendors(ctx, tenantID, shared.Filter{PageSize: 1})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if len(existing) == 0 {
		vendor, err := h.vendorService.CreateVendor(ctx, tenantID, req)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, vendor)
		return
	}

	vendor, err := h.vendorService.UpdateVendor(ctx, tenantID, existing[0].ID, replaceVendorRequest(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vendor)
}

// replaceVendorRequest maps a full profile onto the patch request so a PUT
// replaces every field, clearing the ones the caller omitted.
func replaceVendorRequest(req partnerapp.CreateVendorRequest) partnerapp.UpdateVendorRequest {
	address := req.Address
	if address == nil {
		address = &partnerapp.AddressRequest{}
	}
	return partnerapp.UpdateVendorRequest{
		Name:           &req.Name,
		Email:          &req.Email,
		Phone:          &req.Phone,
		Address:        address,
		TaxID:          &req.TaxID,
		PaymentDetails: &req.PaymentDetails,
		HeaderText:     &req.HeaderText,
		FooterText:     &req.FooterText,
		LogoURL:        &req.LogoURL,
	}
}
