package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invoicehub/backend/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{shared.CodeValidation, http.StatusUnprocessableEntity},
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeInvalidOperation, http.StatusUnprocessableEntity},
		{shared.CodeInvalidAmount, http.StatusUnprocessableEntity},
		{shared.CodeAmountExceedsDue, http.StatusUnprocessableEntity},
		{shared.CodeUnsupportedCurrency, http.StatusUnprocessableEntity},
		{shared.CodeConflict, http.StatusConflict},
		{shared.CodeOptimisticLock, http.StatusConflict},
		{shared.CodeRateLimited, http.StatusTooManyRequests},
		{shared.CodeInternal, http.StatusInternalServerError},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidJSON, http.StatusBadRequest},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(shared.CodeNotFound, "Invoice not found", "req-123-456")

	assert.False(t, resp.Success)
	assert.NotNil(t, resp.Error)
	assert.Equal(t, shared.CodeNotFound, resp.Error.Code)
	assert.Equal(t, "Invoice not found", resp.Error.Message)
	assert.Equal(t, "req-123-456", resp.RequestID)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID(shared.CodeNotFound, "Invoice not found", "req-test-123")

	data, err := json.Marshal(resp)
	assert.NoError(t, err)

	var decoded Response
	err = json.Unmarshal(data, &decoded)
	assert.NoError(t, err)

	assert.False(t, decoded.Success)
	assert.NotNil(t, decoded.Error)
	assert.Equal(t, shared.CodeNotFound, decoded.Error.Code)
	assert.Equal(t, "Invoice not found", decoded.Error.Message)
	assert.Equal(t, "req-test-123", decoded.RequestID)
}

func TestNewSuccessResponse(t *testing.T) {
	data := map[string]string{"name": "test"}
	resp := NewSuccessResponse(data)

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.Meta)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	tests := []struct {
		total         int64
		pageSize      int
		expectedPages int
		expectedSize  int
	}{
		{100, 10, 10, 10},
		{101, 10, 11, 10}, // partial page
		{0, 10, 0, 10},
		{9, 10, 1, 10},
		{10, 10, 1, 10},
		// Zero pageSize falls back to the default
		{100, 0, 5, 20},
	}

	for _, tt := range tests {
		resp := NewSuccessResponseWithMeta(nil, tt.total, 1, tt.pageSize)
		assert.True(t, resp.Success)
		assert.Equal(t, tt.total, resp.Meta.Total)
		assert.Equal(t, tt.expectedPages, resp.Meta.TotalPages)
		assert.Equal(t, tt.expectedSize, resp.Meta.PageSize)
	}
}

func TestListRequestNormalize(t *testing.T) {
	var req ListRequest
	req.Normalize()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.PageSize)
	assert.Equal(t, 0, req.Offset())

	req = ListRequest{Page: 3, PageSize: 25}
	req.Normalize()
	assert.Equal(t, 50, req.Offset())
}
