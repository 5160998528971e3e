package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestPolicy() *Policy {
	return NewPolicy(decimal.NewFromInt(100), decimal.NewFromInt(1500))
}

func TestPolicy_ChargeBoundary(t *testing.T) {
	p := newTestPolicy()

	tests := []struct {
		subtotal int64
		charge   int64
		missing  int64
	}{
		{subtotal: 0, charge: 100, missing: 1500},
		{subtotal: 1499, charge: 100, missing: 1},
		{subtotal: 1500, charge: 0, missing: 0},
		{subtotal: 1501, charge: 0, missing: 0},
	}

	for _, tt := range tests {
		sub := decimal.NewFromInt(tt.subtotal)
		assert.True(t, p.Charge(sub).Equal(decimal.NewFromInt(tt.charge)), "charge for %d", tt.subtotal)
		assert.True(t, p.AmountForFreeDelivery(sub).Equal(decimal.NewFromInt(tt.missing)), "missing for %d", tt.subtotal)
	}
}

func TestPolicy_Message(t *testing.T) {
	p := newTestPolicy()

	assert.Equal(t, "Add ₹1 more to get free delivery", p.Message(decimal.NewFromInt(1499)))
	assert.Equal(t, "You've unlocked free delivery!", p.Message(decimal.NewFromInt(1500)))
	assert.Equal(t, "Add ₹0.5 more to get free delivery", p.Message(decimal.RequireFromString("1499.50")))
}

func TestPolicy_Quote(t *testing.T) {
	q := newTestPolicy().Quote(decimal.NewFromInt(900))

	assert.True(t, q.DeliveryCharge.Equal(decimal.NewFromInt(100)))
	assert.True(t, q.AmountForFreeDelivery.Equal(decimal.NewFromInt(600)))
	assert.True(t, q.FreeDeliveryThreshold.Equal(decimal.NewFromInt(1500)))
}
