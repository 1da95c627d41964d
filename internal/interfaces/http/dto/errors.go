package dto

import (
	"net/http"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Tenant-scoped lookups that miss map to 404 even when the row exists for
// another tenant; cross-tenant access is indistinguishable from absence.
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:          http.StatusUnprocessableEntity,
	shared.CodeNotFound:            http.StatusNotFound,
	shared.CodeInvalidOperation:    http.StatusUnprocessableEntity,
	shared.CodeInvalidAmount:       http.StatusUnprocessableEntity,
	shared.CodeAmountExceedsDue:    http.StatusUnprocessableEntity,
	shared.CodeUnsupportedCurrency: http.StatusUnprocessableEntity,
	shared.CodeConflict:            http.StatusConflict,
	shared.CodeOptimisticLock:      http.StatusConflict,
	shared.CodeRateLimited:         http.StatusTooManyRequests,
	shared.CodeInternal:            http.StatusInternalServerError,
}

// Request-level error codes raised by the HTTP layer itself
const (
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeInvalidJSON = "INVALID_JSON"
)

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch code {
	case ErrCodeBadRequest, ErrCodeInvalidJSON:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
