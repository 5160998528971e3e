package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Price, validation.By(nonNegativeDecimal)),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

// AdjustStockRequest: delta > 0 nhập kho, delta < 0 xuất kho thủ công
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

func (r AdjustStockRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Delta, validation.Required),
	)
}

type ListProductsRequest struct {
	Category string `form:"category"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

func (r *ListProductsRequest) Normalize() {
	r.Category = strings.TrimSpace(r.Category)
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

func nonNegativeDecimal(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if d.IsNegative() {
		return validation.NewError("validation_negative", "must not be negative")
	}
	return nil
}
