package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront-backend/internal/domains/discount/model"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestApplicableSubtotal(t *testing.T) {
	calc := NewDiscountCalculator()
	lines := []model.Line{
		{Category: "electronics", Amount: d("1000")},
		{Category: "Books", Amount: d("500")},
		{Category: "books", Amount: d("250")},
	}

	assert.True(t, calc.ApplicableSubtotal(lines, "electronics").Equal(d("1000")))
	assert.True(t, calc.ApplicableSubtotal(lines, "BOOKS").Equal(d("750")))
	assert.True(t, calc.ApplicableSubtotal(lines, "toys").IsZero())
}

func TestCalculate_Percentage(t *testing.T) {
	calc := NewDiscountCalculator()

	tests := []struct {
		name       string
		value      string
		applicable string
		want       string
	}{
		{name: "SAVE10 on 1000", value: "10", applicable: "1000", want: "100"},
		{name: "rounds half up", value: "15", applicable: "333", want: "50"},    // 49.95
		{name: "rounds to nearest", value: "12", applicable: "333", want: "40"}, // 39.96
		{name: "drops fraction", value: "10", applicable: "1234", want: "123"},
		{name: "100 percent", value: "100", applicable: "499.50", want: "499.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disc := &model.Discount{Type: model.DiscountTypePercentage, Value: d(tt.value)}
			got := calc.Calculate(disc, d(tt.applicable))
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestCalculate_FixedNeverExceedsApplicable(t *testing.T) {
	calc := NewDiscountCalculator()
	disc := &model.Discount{Type: model.DiscountTypeFixed, Value: d("300")}

	assert.True(t, calc.Calculate(disc, d("1000")).Equal(d("300")))
	assert.True(t, calc.Calculate(disc, d("120")).Equal(d("120")))
	assert.True(t, calc.Calculate(disc, decimal.Zero).IsZero())

	for _, applicable := range []string{"1", "99", "299", "300", "301", "5000"} {
		got := calc.Calculate(disc, d(applicable))
		assert.True(t, got.LessThanOrEqual(d(applicable)), "applicable %s", applicable)
	}
}

func TestCalculate_UnknownType(t *testing.T) {
	got := NewDiscountCalculator().Calculate(&model.Discount{Type: "bogus", Value: d("10")}, d("100"))
	assert.True(t, got.IsZero())
}
