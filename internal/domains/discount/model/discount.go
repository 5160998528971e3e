package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixed
}

// Discount: mã giảm giá áp dụng cho một category, trong khoảng [StartsAt, EndsAt]
type Discount struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Type      DiscountType    `json:"type"`
	Value     decimal.Decimal `json:"value"`
	Category  string          `json:"category"`
	StartsAt  time.Time       `json:"starts_at"`
	EndsAt    time.Time       `json:"ends_at"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsActiveAt: đang bật và now nằm trong [StartsAt, EndsAt]
func (d *Discount) IsActiveAt(now time.Time) bool {
	return d.IsActive && !now.Before(d.StartsAt) && !now.After(d.EndsAt)
}

// UsedDiscount: mỗi (user, code) chỉ một row (UNIQUE used_discounts_user_code_key)
type UsedDiscount struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	DiscountCode   string          `json:"discount_code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	UsedAt         time.Time       `json:"used_at"`
}

// Line là một dòng hàng đưa vào calculator
type Line struct {
	Category string
	Amount   decimal.Decimal // unit price * quantity
}
