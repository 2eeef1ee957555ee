package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeVariantNotFound     = "VARIANT_NOT_FOUND"
	ErrCodeSKUNotFound         = "SKU_NOT_FOUND"
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodeLicenseNotFound     = "LICENSE_NOT_FOUND"
	ErrCodeUnknownCombination  = "UNKNOWN_COMBINATION"
	ErrCodeDuplicateSKU        = "DUPLICATE_SKU"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeInvalidTransition   = "INVALID_STATUS_TRANSITION"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

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

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrVariantNotFound    = NewDomainError(ErrCodeVariantNotFound, "Variant not found")
	ErrSKUNotFound        = NewDomainError(ErrCodeSKUNotFound, "SKU not found")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrLicenseNotFound    = NewDomainError(ErrCodeLicenseNotFound, "Sold license not found")
	ErrUnknownCombination = NewDomainError(ErrCodeUnknownCombination, "Combination references a variant or option that does not belong to the product")
	ErrDuplicateSKU       = NewDomainError(ErrCodeDuplicateSKU, "A SKU already exists for this combination")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidStatus      = NewDomainError(ErrCodeInvalidStatus, "Unknown order status")
	ErrInvalidTransition  = NewDomainError(ErrCodeInvalidTransition, "Order status transition is not allowed")
)
