package rendering

import (
	"context"
	"fmt"
)

// PDFRenderer converts a rendered HTML document into PDF bytes
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// Render error codes
const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
	ErrCodeStorageFailed = "STORAGE_FAILED"
)

// RenderError represents a rendering failure with a stable code
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a render error
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
