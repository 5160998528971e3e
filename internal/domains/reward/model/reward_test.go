package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPointsToDiscount(t *testing.T) {
	assert.True(t, PointsToDiscount(50, 10).Equal(decimal.NewFromInt(5)))
	assert.True(t, PointsToDiscount(59, 10).Equal(decimal.NewFromInt(5)))
	assert.True(t, PointsToDiscount(9, 10).IsZero())
	assert.True(t, PointsToDiscount(0, 10).IsZero())
	assert.True(t, PointsToDiscount(-20, 10).IsZero())
}

func TestClampRedemption(t *testing.T) {
	tests := []struct {
		name         string
		points       int
		payable      string
		wantDiscount int64
		wantDebited  int
	}{
		{name: "within payable", points: 50, payable: "1100", wantDiscount: 5, wantDebited: 50},
		{name: "whole request debited", points: 57, payable: "1100", wantDiscount: 5, wantDebited: 57},
		{name: "fifteen of fifteen", points: 15, payable: "1000", wantDiscount: 1, wantDebited: 15},
		{name: "clamped to payable", points: 5000, payable: "120", wantDiscount: 120, wantDebited: 1200},
		{name: "fractional payable floors", points: 5000, payable: "120.75", wantDiscount: 120, wantDebited: 1200},
		{name: "nothing payable", points: 100, payable: "0", wantDiscount: 0, wantDebited: 0},
		{name: "below one unit", points: 9, payable: "1000", wantDiscount: 0, wantDebited: 9},
		{name: "clamp cuts partial unit", points: 155, payable: "12", wantDiscount: 12, wantDebited: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, debited := ClampRedemption(tt.points, decimal.RequireFromString(tt.payable), 10)
			assert.True(t, discount.Equal(decimal.NewFromInt(tt.wantDiscount)), "discount %s", discount)
			assert.Equal(t, tt.wantDebited, debited)
		})
	}
}

func TestAccrualPoints(t *testing.T) {
	assert.Equal(t, 11, AccrualPoints(decimal.RequireFromString("1195"), 100))
	assert.Equal(t, 0, AccrualPoints(decimal.RequireFromString("99.99"), 100))
	assert.Equal(t, 0, AccrualPoints(decimal.Zero, 100))
}
