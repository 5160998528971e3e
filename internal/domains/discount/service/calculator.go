package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/discount/model"
)

// DiscountCalculator xử lý logic tính toán discount
type DiscountCalculator struct{}

func NewDiscountCalculator() *DiscountCalculator {
	return &DiscountCalculator{}
}

// ApplicableSubtotal: tổng tiền các dòng thuộc category của discount (không phân biệt hoa thường)
func (c *DiscountCalculator) ApplicableSubtotal(lines []model.Line, category string) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		if strings.EqualFold(strings.TrimSpace(line.Category), strings.TrimSpace(category)) {
			subtotal = subtotal.Add(line.Amount)
		}
	}
	return subtotal
}

// Calculate tính số tiền giảm trên applicable subtotal
//
//   - percentage: round(applicable * value / 100)
//   - fixed: min(value, applicable)
//
// Kết quả không bao giờ vượt applicable subtotal, làm tròn đến đơn vị tiền.
func (c *DiscountCalculator) Calculate(d *model.Discount, applicable decimal.Decimal) decimal.Decimal {
	if !applicable.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch d.Type {
	case model.DiscountTypePercentage:
		// VD: 1000 × 10 / 100 = 100
		discount = applicable.Mul(d.Value).Div(decimal.NewFromInt(100))
	case model.DiscountTypeFixed:
		discount = decimal.Min(d.Value, applicable)
	default:
		return decimal.Zero
	}

	// Round half up đến đơn vị tiền
	discount = discount.Round(0)
	if discount.GreaterThan(applicable) {
		discount = applicable
	}
	return discount
}
