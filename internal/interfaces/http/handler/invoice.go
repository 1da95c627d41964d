package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/invoicehub/backend/internal/application/billing"
)

// InvoiceHandler handles invoice lifecycle and payment ledger endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
	paymentService *billingapp.PaymentService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService, paymentService *billingapp.PaymentService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		paymentService: paymentService,
	}
}

// Create godoc
// @Summary      Create a new invoice
// @Description  Create a draft invoice; the number is allocated from the tenant's numbering config unless supplied
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body billingapp.CreateInvoiceRequest true "Invoice creation request"
// @Success      201 {object} dto.Response{data=billingapp.InvoiceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// List godoc
// @Summary      List invoices
// @Description  Retrieve a paginated list of invoices with optional status, type and date filters
// @Tags         invoices
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        status query string false "Invoice status"
// @Param        type query string false "Invoice type"
// @Param        customer query string false "Customer name search"
// @Param        from_date query string false "Issue date lower bound (YYYY-MM-DD)"
// @Param        to_date query string false "Issue date upper bound (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]billingapp.InvoiceResponse,meta=dto.Meta}
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.invoiceService.ListInvoices(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID godoc
// @Summary      Get invoice by ID
// @Tags         invoices
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Update godoc
// @Summary      Update an invoice
// @Description  Patch invoice content; rejected once the invoice is paid
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body billingapp.UpdateInvoiceRequest true "Invoice update request"
// @Success      200 {object} dto.Response{data=billingapp.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), tenantID, invoiceID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Delete godoc
// @Summary      Delete an invoice
// @Description  Soft-delete an invoice
// @Tags         invoices
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), tenantID, invoiceID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// SetStatus godoc
// @Summary      Set invoice status
// @Description  Explicitly move the invoice through its lifecycle
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body billingapp.SetStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=billingapp.InvoiceResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id}/status [post]
func (h *InvoiceHandler) SetStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.SetStatus(c.Request.Context(), tenantID, invoiceID, req.Status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Send godoc
// @Summary      Send an invoice
// @Description  Render the invoice, store the PDF, email the customer and mark it sent
// @Tags         invoices
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        template_id query string false "Template override" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.InvoiceResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	templateID, ok := parseTemplateID(c)
	if !ok {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	invoice, err := h.invoiceService.SendInvoice(c.Request.Context(), tenantID, invoiceID, templateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// MarkViewed godoc
// @Summary      Record an invoice view
// @Description  Open-tracking endpoint; moves a sent invoice to viewed
// @Tags         invoices
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.InvoiceResponse}
// @Router       /invoices/{id}/view [post]
func (h *InvoiceHandler) MarkViewed(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.MarkViewed(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// RenderHTML godoc
// @Summary      Render invoice HTML
// @Tags         invoices
// @Produce      html
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        template_id query string false "Template override" format(uuid)
// @Success      200 {string} string "text/html"
// @Router       /invoices/{id}/render [get]
func (h *InvoiceHandler) RenderHTML(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	templateID, ok := parseTemplateID(c)
	if !ok {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	html, err := h.invoiceService.RenderInvoiceHTML(c.Request.Context(), tenantID, invoiceID, templateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// RenderPDF godoc
// @Summary      Render invoice PDF
// @Tags         invoices
// @Produce      octet-stream
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        template_id query string false "Template override" format(uuid)
// @Success      200 {string} binary "application/pdf"
// @Router       /invoices/{id}/pdf [get]
func (h *InvoiceHandler) RenderPDF(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	templateID, ok := parseTemplateID(c)
	if !ok {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	pdf, err := h.invoiceService.RenderInvoicePDF(c.Request.Context(), tenantID, invoiceID, templateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+invoiceID.String()+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// RecordPayment godoc
// @Summary      Record a payment
// @Description  Append a payment to the invoice ledger and update the balance
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body billingapp.RecordPaymentRequest true "Payment details"
// @Success      201 {object} dto.Response{data=billingapp.RecordPaymentResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), tenantID, invoiceID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// ListPayments godoc
// @Summary      List invoice payments
// @Tags         payments
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.ListPaymentsResponse}
// @Router       /invoices/{id}/payments [get]
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	result, err := h.paymentService.ListPayments(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// DeletePayment godoc
// @Summary      Delete a payment
// @Description  Remove a ledger row and restore the invoice balance
// @Tags         payments
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        paymentID path string true "Payment ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id}/payments/{paymentID} [delete]
func (h *InvoiceHandler) DeletePayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	paymentID, err := uuid.Parse(c.Param("paymentID"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	invoice, err := h.paymentService.DeletePayment(c.Request.Context(), tenantID, invoiceID, paymentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// parseTemplateID reads the optional template_id query parameter.
func parseTemplateID(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("template_id")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}
