package model

import (
	"errors"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeDiscountNotFound      ErrorCode = "DSC001" // 404
	ErrCodeDiscountAlreadyUsed   ErrorCode = "DSC002" // 400
	ErrCodeDiscountNotApplicable ErrorCode = "DSC003" // 400
	ErrCodeDiscountInactive      ErrorCode = "DSC004" // 400
	ErrCodeDiscountCodeExists    ErrorCode = "DSC005" // 409
	ErrCodeCartEmpty             ErrorCode = "DSC006" // 400
	ErrCodeDiscountAlreadyOnCart ErrorCode = "DSC007" // 400
)

// DiscountError mang code + HTTP status để handler map trực tiếp
type DiscountError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"-"`
}

func (e *DiscountError) Error() string {
	return e.Message
}

// Predefined errors
var (
	ErrDiscountNotFound = &DiscountError{
		Code:       ErrCodeDiscountNotFound,
		Message:    "Invalid discount code",
		HTTPStatus: http.StatusNotFound,
	}

	ErrDiscountAlreadyUsed = &DiscountError{
		Code:       ErrCodeDiscountAlreadyUsed,
		Message:    "You have already used this discount code",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrDiscountNotApplicable = &DiscountError{
		Code:       ErrCodeDiscountNotApplicable,
		Message:    "This discount code does not apply to any item in your cart",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrDiscountInactive = &DiscountError{
		Code:       ErrCodeDiscountInactive,
		Message:    "This discount code is not active",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrDiscountCodeExists = &DiscountError{
		Code:       ErrCodeDiscountCodeExists,
		Message:    "A discount with this code already exists",
		HTTPStatus: http.StatusConflict,
	}

	ErrCartEmpty = &DiscountError{
		Code:       ErrCodeCartEmpty,
		Message:    "Your cart is empty",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrDiscountAlreadyOnCart = &DiscountError{
		Code:       ErrCodeDiscountAlreadyOnCart,
		Message:    "A discount code is already applied to your cart",
		HTTPStatus: http.StatusBadRequest,
	}
)

// AsDiscountError unwraps err thành *DiscountError nếu có
func AsDiscountError(err error) (*DiscountError, bool) {
	var dErr *DiscountError
	if errors.As(err, &dErr) {
		return dErr, true
	}
	return nil, false
}
