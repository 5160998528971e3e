package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const freeDeliveryUnlockedMessage = "You've unlocked free delivery!"

// Policy: phí giao hàng theo ngưỡng, free ship khi subtotal >= threshold.
// Hàm thuần, không I/O, dùng chung cho cart preview + checkout + quote API.
type Policy struct {
	baseCharge decimal.Decimal
	threshold  decimal.Decimal
}

// Quote là kết quả tính phí cho một subtotal
type Quote struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	DeliveryCharge        decimal.Decimal `json:"delivery_charge"`
	FreeDeliveryThreshold decimal.Decimal `json:"free_delivery_threshold"`
	AmountForFreeDelivery decimal.Decimal `json:"amount_for_free_delivery"`
	Message               string          `json:"message"`
}

func NewPolicy(baseCharge, threshold decimal.Decimal) *Policy {
	return &Policy{baseCharge: baseCharge, threshold: threshold}
}

// Charge: subtotal >= threshold -> 0, ngược lại baseCharge
func (p *Policy) Charge(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.threshold) {
		return decimal.Zero
	}
	return p.baseCharge
}

// AmountForFreeDelivery = max(0, threshold - subtotal)
func (p *Policy) AmountForFreeDelivery(subtotal decimal.Decimal) decimal.Decimal {
	remaining := p.threshold.Sub(subtotal)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

func (p *Policy) Message(subtotal decimal.Decimal) string {
	remaining := p.AmountForFreeDelivery(subtotal)
	if remaining.IsZero() {
		return freeDeliveryUnlockedMessage
	}
	return fmt.Sprintf("Add ₹%s more to get free delivery", remaining.Round(2).String())
}

func (p *Policy) Quote(subtotal decimal.Decimal) Quote {
	return Quote{
		Subtotal:              subtotal,
		DeliveryCharge:        p.Charge(subtotal),
		FreeDeliveryThreshold: p.threshold,
		AmountForFreeDelivery: p.AmountForFreeDelivery(subtotal),
		Message:               p.Message(subtotal),
	}
}
