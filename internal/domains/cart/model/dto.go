package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.By(func(interface{}) error {
			if r.ProductID == uuid.Nil {
				return validation.NewError("validation_required", "cannot be blank")
			}
			return nil
		})),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(99)),
	)
}

// CartResponse: cart + các khoản tiền tạm tính (checkout tính lại trong tx)
type CartResponse struct {
	Cart                  *Cart           `json:"cart"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	DeliveryCharge        decimal.Decimal `json:"delivery_charge"`
	AmountForFreeDelivery decimal.Decimal `json:"amount_for_free_delivery"`
	DeliveryMessage       string          `json:"delivery_message"`
	Total                 decimal.Decimal `json:"total"`
}
