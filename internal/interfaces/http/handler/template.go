package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	templatingapp "github.com/invoicehub/backend/internal/application/templating"
	"github.com/invoicehub/backend/internal/infrastructure/rendering"
)

// TemplateHandler handles invoice template endpoints
type TemplateHandler struct {
	BaseHandler
	templateService *templatingapp.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateService *templatingapp.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// List godoc
// @Summary      List invoice templates
// @Description  Returns the builtin layouts followed by the tenant's custom templates
// @Tags         templates
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Success      200 {object} dto.Response{data=[]templatingapp.TemplateResponse}
// @Router       /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	custom, err := h.templateService.ListTemplates(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	builtins := rendering.BuiltinTemplates()
	templates := make([]templatingapp.TemplateResponse, 0, len(builtins)+len(custom))
	for _, b := range builtins {
		templates = append(templates, builtinTemplateResponse(b))
	}
	templates = append(templates, custom...)

	h.Success(c, templates)
}

// GetByID godoc
// @Summary      Get template by ID
// @Description  Resolves builtin layout IDs as well as tenant-custom templates
// @Tags         templates
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Template ID" format(uuid)
// @Success      200 {object} dto.Response{data=templatingapp.TemplateResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /templates/{id} [get]
func (h *TemplateHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	if builtin := rendering.FindBuiltinTemplate(templateID); builtin != nil {
		h.Success(c, builtinTemplateResponse(*builtin))
		return
	}

	template, err := h.templateService.GetTemplate(c.Request.Context(), tenantID, templateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, template)
}

// Create godoc
// @Summary      Create a tenant template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body templatingapp.CreateTemplateRequest true "Template creation request"
// @Success      201 {object} dto.Response{data=templatingapp.TemplateResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req templatingapp.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, template)
}

// Update godoc
// @Summary      Update a tenant template
// @Description  Builtin layouts cannot be modified
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Template ID" format(uuid)
// @Param        request body templatingapp.UpdateTemplateRequest true "Template update request"
// @Success      200 {object} dto.Response{data=templatingapp.TemplateResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	var req templatingapp.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), tenantID, templateID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, template)
}

// SetDefault godoc
// @Summary      Set the tenant's default template
// @Tags         templates
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Template ID" format(uuid)
// @Success      200 {object} dto.Response{data=templatingapp.TemplateResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /templates/{id}/default [post]
func (h *TemplateHandler) SetDefault(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	template, err := h.templateService.SetDefaultTemplate(c.Request.Context(), tenantID, templateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, template)
}

// Delete godoc
// @Summary      Delete a tenant template
// @Description  Builtin layouts cannot be deleted
// @Tags         templates
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Template ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), tenantID, templateID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

func builtinTemplateResponse(b rendering.BuiltinTemplate) templatingapp.TemplateResponse {
	return templatingapp.TemplateResponse{
		ID:           b.ID,
		Name:         b.Name,
		Layout:       string(b.Layout),
		PrimaryColor: b.PrimaryColor,
		FontFamily:   b.FontFamily,
		Description:  b.Description,
		Builtin:      true,
	}
}
