package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared across the domain
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidOperation    = "INVALID_OPERATION"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeAmountExceedsDue    = "AMOUNT_EXCEEDS_DUE"
	CodeUnsupportedCurrency = "UNSUPPORTED_CURRENCY"
	CodeConflict            = "CONFLICT"
	CodeOptimisticLock      = "OPTIMISTIC_LOCK_ERROR"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternal            = "INTERNAL_ERROR"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidInput        = NewDomainError(CodeValidation, "Invalid input provided")
	ErrInvalidOperation    = NewDomainError(CodeInvalidOperation, "Operation not allowed in current state")
	ErrInvalidAmount       = NewDomainError(CodeInvalidAmount, "Amount must be a positive value")
	ErrAmountExceedsDue    = NewDomainError(CodeAmountExceedsDue, "Amount exceeds the outstanding balance")
	ErrUnsupportedCurrency = NewDomainError(CodeUnsupportedCurrency, "Currency is not supported")
	ErrConflict            = NewDomainError(CodeConflict, "Resource already exists")
	ErrConcurrencyConflict = NewDomainError(CodeOptimisticLock, "Resource was modified by another process")
	ErrRateLimited         = NewDomainError(CodeRateLimited, "Usage quota exhausted")
)

// NewValidationError creates a validation error with a specific message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewInvalidOperationError creates an invalid-operation error with a specific message
func NewInvalidOperationError(message string) *DomainError {
	return NewDomainError(CodeInvalidOperation, message)
}

// NewConflictError creates a conflict error with a specific message
func NewConflictError(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}

// NewNotFoundError creates a not-found error with a specific message
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewRateLimitedError creates a rate-limited error with a specific message
func NewRateLimitedError(message string) *DomainError {
	return NewDomainError(CodeRateLimited, message)
}
