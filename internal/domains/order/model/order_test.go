package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusShipped, OrderStatusCancelled},
		OrderStatusProcessing: {OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
		OrderStatusShipped:    {OrderStatusDelivered, OrderStatusReturned},
		OrderStatusDelivered:  {OrderStatusReturned},
	}
	all := []OrderStatus{
		OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned,
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.True(t, OrderStatusReturned.IsTerminal())
	assert.False(t, OrderStatusDelivered.IsTerminal())
}

func TestIsPaymentSettled(t *testing.T) {
	assert.True(t, (&Order{PaymentMethod: PaymentMethodCOD, PaymentStatus: PaymentStatusPending}).IsPaymentSettled())
	assert.False(t, (&Order{PaymentMethod: PaymentMethodOnline, PaymentStatus: PaymentStatusPending}).IsPaymentSettled())
	assert.True(t, (&Order{PaymentMethod: PaymentMethodOnline, PaymentStatus: PaymentStatusPaid}).IsPaymentSettled())
}

func validOrder() *Order {
	o := &Order{
		Status:               OrderStatusConfirmed,
		PaymentMethod:        PaymentMethodCOD,
		PaymentStatus:        PaymentStatusPending,
		Subtotal:             decimal.NewFromInt(1000),
		DeliveryCharge:       decimal.NewFromInt(100),
		DiscountAmount:       decimal.NewFromInt(100),
		RewardPointsUsed:     50,
		RewardDiscountAmount: decimal.NewFromInt(5),
	}
	o.Total = o.CalculateTotal()
	return o
}

func TestOrderValidate_TotalInvariant(t *testing.T) {
	o := validOrder()
	assert.True(t, o.Total.Equal(decimal.NewFromInt(995)))
	assert.NoError(t, o.Validate())

	o.Total = decimal.NewFromInt(1000)
	assert.ErrorIs(t, o.Validate(), ErrTotalMismatch)
}

func TestOrderValidate_NegativeAmounts(t *testing.T) {
	o := validOrder()
	o.DiscountAmount = decimal.NewFromInt(-1)
	o.Total = o.CalculateTotal()
	assert.ErrorIs(t, o.Validate(), ErrInvalidAmount)

	o = validOrder()
	o.RewardDiscountAmount = decimal.NewFromInt(2000)
	o.Total = o.CalculateTotal()
	assert.ErrorIs(t, o.Validate(), ErrInvalidAmount)
}

func TestOrderValidate_UnknownPaymentMethod(t *testing.T) {
	o := validOrder()
	o.PaymentMethod = "barter"
	assert.ErrorIs(t, o.Validate(), ErrInvalidPaymentMethod)
}

func TestMapShippingStatus(t *testing.T) {
	tests := map[string]OrderStatus{
		"PICKUP SCHEDULED":     OrderStatusProcessing,
		"ready to ship":        OrderStatusProcessing,
		"In Transit":           OrderStatusShipped,
		"  out  for delivery ": OrderStatusShipped,
		"DELIVERED":            OrderStatusDelivered,
		"Canceled":             OrderStatusCancelled,
		"RTO DELIVERED":        OrderStatusReturned,
	}
	for raw, want := range tests {
		got, ok := MapShippingStatus(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := MapShippingStatus("LOST IN SPACE")
	assert.False(t, ok)
}

func TestGenerateOrderNumber(t *testing.T) {
	id := uuid.MustParse("1a2b3c4d-0000-4000-8000-000000000000")
	at := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD-20260301-1A2B3C4D", GenerateOrderNumber(id, at))
}

func TestListOrdersRequest_Normalize(t *testing.T) {
	req := ListOrdersRequest{Status: " Shipped ", Limit: 500}
	req.Normalize()

	assert.Equal(t, "shipped", req.Status)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 100, req.Limit)
	assert.NoError(t, req.Validate())

	bad := ListOrdersRequest{Status: "lost"}
	assert.Error(t, bad.Validate())
}

func TestUpdateStatusRequest_Validate(t *testing.T) {
	assert.NoError(t, UpdateStatusRequest{Status: OrderStatusCancelled}.Validate())
	assert.Error(t, UpdateStatusRequest{Status: "pending"}.Validate())
	assert.Error(t, UpdateStatusRequest{}.Validate())
}

func TestShippingUpdate_Validate(t *testing.T) {
	// OrderID zero-value phải bị từ chối
	assert.Error(t, ShippingUpdate{Status: "SHIPPED"}.Validate())
	assert.Error(t, ShippingUpdate{OrderID: uuid.New()}.Validate())
	assert.NoError(t, ShippingUpdate{OrderID: uuid.New(), Status: "SHIPPED", AWB: "AWB123"}.Validate())
}
