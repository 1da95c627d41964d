package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// WordsHandler handles the amount-in-words utility endpoint
type WordsHandler struct {
	BaseHandler
}

// NewWordsHandler creates a new WordsHandler
func NewWordsHandler() *WordsHandler {
	return &WordsHandler{}
}

// AmountInWordsQuery selects the amount and rendering options
type AmountInWordsQuery struct {
	Amount          float64 `form:"amount" binding:"required"`
	Currency        string  `form:"currency"`
	Format          string  `form:"format"`
	IncludeDecimals *bool   `form:"include_decimals"`
}

// AmountInWordsResponse carries the spelled-out amount
type AmountInWordsResponse struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Format   string  `json:"format,omitempty"`
	Words    string  `json:"words"`
}

// AmountInWords godoc
// @Summary      Spell an amount in words
// @Description  Converts a monetary amount to its written form, e.g. for legal invoice footers
// @Tags         utilities
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        amount query number true "Amount"
// @Param        currency query string false "Currency code" default(USD)
// @Param        format query string false "Casing convention" Enums(legal, formal)
// @Param        include_decimals query bool false "Spell the fractional part" default(true)
// @Success      200 {object} dto.Response{data=AmountInWordsResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /amount-in-words [get]
func (h *WordsHandler) AmountInWords(c *gin.Context) {
	var query AmountInWordsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	currency := valueobject.Currency(query.Currency)
	if query.Currency == "" {
		currency = valueobject.DefaultCurrency
	}

	includeDecimals := true
	if query.IncludeDecimals != nil {
		includeDecimals = *query.IncludeDecimals
	}

	words, err := billing.AmountInWords(query.Amount, currency, billing.WordsFormat(query.Format), includeDecimals)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, AmountInWordsResponse{
		Amount:   query.Amount,
		Currency: string(currency),
		Format:   query.Format,
		Words:    words,
	})
}
