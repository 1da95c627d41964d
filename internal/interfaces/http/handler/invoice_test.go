package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/invoicehub/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The request parsing paths reject before any service is touched, so a
// handler with nil services is safe for them.
func newInvoiceParseHandler() *InvoiceHandler {
	return NewInvoiceHandler(nil, nil)
}

func TestInvoiceHandlerRejectsMissingTenant(t *testing.T) {
	h := newInvoiceParseHandler()

	c, w := newTestContext(t)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestInvoiceHandlerRejectsMalformedID(t *testing.T) {
	h := newInvoiceParseHandler()

	methods := map[string]func(*gin.Context){
		"GetByID":       h.GetByID,
		"Update":        h.Update,
		"Delete":        h.Delete,
		"SetStatus":     h.SetStatus,
		"Send":          h.Send,
		"MarkViewed":    h.MarkViewed,
		"RenderHTML":    h.RenderHTML,
		"RenderPDF":     h.RenderPDF,
		"RecordPayment": h.RecordPayment,
		"ListPayments":  h.ListPayments,
		"DeletePayment": h.DeletePayment,
	}

	for name, method := range methods {
		t.Run(name, func(t *testing.T) {
			c, w := newTestContext(t)
			setTenant(c, uuid.New())
			c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

			method(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestInvoiceHandlerCreateRejectsInvalidJSON(t *testing.T) {
	h := newInvoiceParseHandler()

	c, w := newTestContext(t)
	setTenant(c, uuid.New())
	c.Request = httptest.NewRequest("POST", "/invoices", bytes.NewBufferString("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandlerSetStatusRequiresStatus(t *testing.T) {
	h := newInvoiceParseHandler()

	c, w := newTestContext(t)
	setTenant(c, uuid.New())
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest("POST", "/invoices/x/status", bytes.NewBufferString(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.SetStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandlerDeletePaymentRejectsMalformedPaymentID(t *testing.T) {
	h := newInvoiceParseHandler()

	c, w := newTestContext(t)
	setTenant(c, uuid.New())
	c.Params = gin.Params{
		{Key: "id", Value: uuid.New().String()},
		{Key: "paymentID", Value: "bogus"},
	}

	h.DeletePayment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandlerRenderRejectsMalformedTemplateID(t *testing.T) {
	h := newInvoiceParseHandler()

	for name, method := range map[string]func(*gin.Context){
		"Send":       h.Send,
		"RenderHTML": h.RenderHTML,
		"RenderPDF":  h.RenderPDF,
	} {
		t.Run(name, func(t *testing.T) {
			c, w := newTestContext(t)
			setTenant(c, uuid.New())
			c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
			c.Request = httptest.NewRequest("GET", "/invoices/x/render?template_id=oops", nil)

			method(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestParseTemplateID(t *testing.T) {
	valid := uuid.New()

	tests := []struct {
		name   string
		query  string
		wantID *uuid.UUID
		wantOK bool
	}{
		{name: "absent", query: "", wantID: nil, wantOK: true},
		{name: "valid", query: "?template_id=" + valid.String(), wantID: &valid, wantOK: true},
		{name: "malformed", query: "?template_id=nope", wantID: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(t)
			c.Request = httptest.NewRequest("GET", "/invoices/x/render"+tt.query, nil)

			id, ok := parseTemplateID(c)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantID == nil {
				assert.Nil(t, id)
			} else {
				require.NotNil(t, id)
				assert.Equal(t, *tt.wantID, *id)
			}
		})
	}
}
