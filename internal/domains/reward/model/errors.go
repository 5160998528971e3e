package model

import (
	"errors"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeInvalidPoints      ErrorCode = "RWD001"
	ErrCodeInsufficientPoints ErrorCode = "RWD002"
	ErrCodeCartEmpty          ErrorCode = "RWD003"
	ErrCodeNothingToRedeem    ErrorCode = "RWD004"
	ErrCodeNothingToRelease   ErrorCode = "RWD005"
	ErrCodeUserNotFound       ErrorCode = "RWD006"
)

type RewardError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"-"`
}

func (e *RewardError) Error() string {
	return e.Message
}

var (
	ErrInvalidPoints = &RewardError{
		Code:       ErrCodeInvalidPoints,
		Message:    "Points to redeem must be greater than 0",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInsufficientPoints = &RewardError{
		Code:       ErrCodeInsufficientPoints,
		Message:    "Insufficient reward points",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrCartEmpty = &RewardError{
		Code:       ErrCodeCartEmpty,
		Message:    "Your cart is empty",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrNothingToRedeem = &RewardError{
		Code:       ErrCodeNothingToRedeem,
		Message:    "Nothing is left to pay on the cart",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrNothingToRelease = &RewardError{
		Code:       ErrCodeNothingToRelease,
		Message:    "No reward points are applied to your cart",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrUserNotFound = &RewardError{
		Code:       ErrCodeUserNotFound,
		Message:    "User not found",
		HTTPStatus: http.StatusNotFound,
	}
)

func AsRewardError(err error) (*RewardError, bool) {
	var rErr *RewardError
	if errors.As(err, &rErr) {
		return rErr, true
	}
	return nil, false
}
