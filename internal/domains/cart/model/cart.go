package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrItemNotInCart   = errors.New("item not in cart")
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 99")
)

// Cart: mỗi user một cart. Discount + reward đã áp dụng được lưu trên cart,
// checkout đọc từ đây, không tin số tiền client gửi lên.
type Cart struct {
	ID                   uuid.UUID       `json:"id"`
	UserID               uuid.UUID       `json:"user_id"`
	DiscountCode         *string         `json:"discount_code,omitempty"`
	DiscountAmount       decimal.Decimal `json:"discount_amount"`
	RewardPoints         int             `json:"reward_points"`
	RewardDiscountAmount decimal.Decimal `json:"reward_discount_amount"`
	Items                []CartItem      `json:"items"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// CartItem join với products để có giá + category hiện tại
type CartItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

func (c *Cart) HasDiscount() bool {
	return c.DiscountCode != nil && *c.DiscountCode != ""
}
