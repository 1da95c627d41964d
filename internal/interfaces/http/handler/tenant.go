package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/invoicehub/backend/internal/application/identity"
)

// TenantHandler handles the tenant self-service endpoints
type TenantHandler struct {
	BaseHandler
	tenantService *identityapp.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *identityapp.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// UpdateTenantProfileRequest patches the calling tenant's settings. Profile
// fields, numbering and plan are each applied only when present.
type UpdateTenantProfileRequest struct {
	Name      *string                             `json:"name"`
	Email     *string                             `json:"email" binding:"omitempty,email"`
	Notes     *string                             `json:"notes"`
	Numbering *identityapp.UpdateNumberingRequest `json:"numbering"`
	Plan      *string                             `json:"plan"`
}

// Me godoc
// @Summary      Get the calling tenant's profile
// @Tags         tenants
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Success      200 {object} dto.Response{data=identityapp.TenantResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/me [get]
func (h *TenantHandler) Me(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenant)
}

// UpdateMe godoc
// @Summary      Update the calling tenant's profile
// @Description  Patch profile fields, invoice numbering and subscription plan
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body UpdateTenantProfileRequest true "Tenant update request"
// @Success      200 {object} dto.Response{data=identityapp.TenantResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/me [put]
func (h *TenantHandler) UpdateMe(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req UpdateTenantProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()

	tenant, err := h.tenantService.UpdateTenant(ctx, tenantID, identityapp.UpdateTenantRequest{
		Name:  req.Name,
		Email: req.Email,
		Notes: req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if req.Numbering != nil {
		tenant, err = h.tenantService.UpdateNumbering(ctx, tenantID, *req.Numbering)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
	}

	if req.Plan != nil {
		tenant, err = h.tenantService.ChangePlan(ctx, tenantID, *req.Plan)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
	}

	h.Success(c, tenant)
}
