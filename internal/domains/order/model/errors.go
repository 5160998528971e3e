package model

import "errors"

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeOrderNotFound        = "ORD001"
	ErrCodeOrderCannotCancel    = "ORD002"
	ErrCodeVersionMismatch      = "ORD003"
	ErrCodeInsufficientStock    = "ORD004"
	ErrCodeCartEmpty            = "ORD005"
	ErrCodeInvalidTransition    = "ORD006"
	ErrCodeForbidden            = "ORD007"
	ErrCodeInvalidRequest       = "ORD008"
	ErrCodeInvalidAmount        = "ORD009"
	ErrCodeOrderNotDeletable    = "ORD010"
	ErrCodeInvalidPaymentMethod = "ORD011"
	ErrCodeProductNotFound      = "ORD012"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderCannotCancel    = errors.New("order cannot be cancelled")
	ErrVersionMismatch      = errors.New("version mismatch - concurrent modification detected")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrForbidden            = errors.New("not allowed to change this order")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidAmount        = errors.New("order amounts must be >= 0")
	ErrTotalMismatch        = errors.New("total does not match calculation")
	ErrOrderNotDeletable    = errors.New("only cancelled or returned orders can be deleted")
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================
type OrderError struct {
	Code    string
	Message string
	Err     error
}

func (e *OrderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *OrderError) Unwrap() error {
	return e.Err
}

// NewOrderError creates a new OrderError
func NewOrderError(code, message string, err error) *OrderError {
	return &OrderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
