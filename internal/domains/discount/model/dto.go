package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type ValidateDiscountRequest struct {
	Code string `json:"code"`
}

func (r ValidateDiscountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(3, 50)),
	)
}

type ValidateDiscountResponse struct {
	Code               string          `json:"code"`
	Type               DiscountType    `json:"type"`
	Category           string          `json:"category"`
	ApplicableSubtotal decimal.Decimal `json:"applicable_subtotal"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
}

// ========================================
// ADMIN
// ========================================

type CreateDiscountRequest struct {
	Code     string          `json:"code"`
	Type     DiscountType    `json:"type"`
	Value    decimal.Decimal `json:"value"`
	Category string          `json:"category"`
	StartsAt time.Time       `json:"starts_at"`
	EndsAt   time.Time       `json:"ends_at"`
}

func (r CreateDiscountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.Type, validation.Required, validation.In(DiscountTypePercentage, DiscountTypeFixed)),
		validation.Field(&r.Value, validation.By(r.validateValue)),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.StartsAt, validation.Required),
		validation.Field(&r.EndsAt, validation.Required, validation.Min(r.StartsAt).Exclusive()),
	)
}

func (r CreateDiscountRequest) validateValue(interface{}) error {
	if !r.Value.IsPositive() {
		return validation.NewError("validation_value_positive", "must be greater than 0")
	}
	if r.Type == DiscountTypePercentage && r.Value.GreaterThan(decimal.NewFromInt(100)) {
		return validation.NewError("validation_value_percentage", "percentage must not exceed 100")
	}
	return nil
}

type ListDiscountsRequest struct {
	ActiveOnly bool `form:"active_only"`
	Page       int  `form:"page"`
	Limit      int  `form:"limit"`
}

func (r *ListDiscountsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}
