package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/invoicehub/backend/internal/application/assist"
)

// AssistHandler handles the AI-backed drafting assistance endpoints
type AssistHandler struct {
	BaseHandler
	assistService *assist.Service
}

// NewAssistHandler creates a new AssistHandler
func NewAssistHandler(assistService *assist.Service) *AssistHandler {
	return &AssistHandler{assistService: assistService}
}

// SuggestDescriptionRequest asks for a polished line-item description
type SuggestDescriptionRequest struct {
	Prompt string `json:"prompt" binding:"required,min=3,max=500"`
}

// SuggestDescription godoc
// @Summary      Suggest a line-item description
// @Description  Rewrites a rough prompt into a professional invoice line description; metered per tenant plan
// @Tags         assist
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body SuggestDescriptionRequest true "Rough description"
// @Success      200 {object} dto.Response{data=assist.SuggestionResponse}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /assist/description [post]
func (h *AssistHandler) SuggestDescription(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req SuggestDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	suggestion, err := h.assistService.SuggestDescription(c.Request.Context(), tenantID, req.Prompt)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, suggestion)
}
