package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents order status
type OrderStatus string

const (
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// PaymentMethod represents valid payment methods
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

func (pm PaymentMethod) IsValid() bool {
	return pm == PaymentMethodCOD || pm == PaymentMethodOnline
}

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// HistorySource: ai/cái gì gây ra thay đổi trạng thái
type HistorySource string

const (
	SourceUser            HistorySource = "user"
	SourceAdmin           HistorySource = "admin"
	SourceSystem          HistorySource = "system"
	SourceShippingWebhook HistorySource = "shipping_webhook"
	SourcePaymentWebhook  HistorySource = "payment_webhook"
)

// Order represents customer orders with payment and delivery tracking
type Order struct {
	ID          uuid.UUID   `json:"id"`
	OrderNumber string      `json:"order_number"`
	UserID      uuid.UUID   `json:"user_id"`
	Status      OrderStatus `json:"status"`
	AddressID   *uuid.UUID  `json:"address_id,omitempty"`

	// Pricing
	Subtotal             decimal.Decimal `json:"subtotal"`
	DeliveryCharge       decimal.Decimal `json:"delivery_charge"`
	DiscountCode         *string         `json:"discount_code,omitempty"`
	DiscountAmount       decimal.Decimal `json:"discount_amount"`
	RewardPointsUsed     int             `json:"reward_points_used"`
	RewardDiscountAmount decimal.Decimal `json:"reward_discount_amount"`
	Total                decimal.Decimal `json:"total"`

	// Payment
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`

	// Shipping
	TrackingNumber *string    `json:"tracking_number,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`

	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem: snapshot tên, category, giá tại thời điểm đặt
type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderStatusHistory tracks order status changes
type OrderStatusHistory struct {
	ID         uuid.UUID     `json:"id"`
	OrderID    uuid.UUID     `json:"order_id"`
	FromStatus *OrderStatus  `json:"from_status,omitempty"`
	ToStatus   OrderStatus   `json:"to_status"`
	ChangedBy  *uuid.UUID    `json:"changed_by,omitempty"`
	Source     HistorySource `json:"source"`
	Note       *string       `json:"note,omitempty"`
	ChangedAt  time.Time     `json:"changed_at"`
}

// =====================================================
// STATE MACHINE
// =====================================================

var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusShipped, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusReturned},
	OrderStatusDelivered:  {OrderStatusReturned},
}

// CanTransition: cancelled và returned là terminal
func CanTransition(from, to OrderStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusReturned
}

// IsPaymentSettled: COD coi như settled, online phải paid
func (o *Order) IsPaymentSettled() bool {
	return o.PaymentMethod == PaymentMethodCOD || o.PaymentStatus == PaymentStatusPaid
}

func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// ItemQuantities gộp số lượng theo product (dùng khi hoàn kho)
func (o *Order) ItemQuantities() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(o.Items))
	for _, item := range o.Items {
		out[item.ProductID] += item.Quantity
	}
	return out
}

// =====================================================
// TOTALS
// =====================================================

// CalculateTotal = subtotal + delivery - discount - reward discount
func CalculateTotal(subtotal, delivery, discount, reward decimal.Decimal) decimal.Decimal {
	return subtotal.Add(delivery).Sub(discount).Sub(reward)
}

func (o *Order) CalculateTotal() decimal.Decimal {
	return CalculateTotal(o.Subtotal, o.DeliveryCharge, o.DiscountAmount, o.RewardDiscountAmount)
}

// Validate kiểm tra amounts trước khi insert, DB còn CHECK orders_total_check
func (o *Order) Validate() error {
	if !o.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !o.PaymentMethod.IsValid() {
		return ErrInvalidPaymentMethod
	}

	for _, amount := range []decimal.Decimal{o.Subtotal, o.DeliveryCharge, o.DiscountAmount, o.RewardDiscountAmount} {
		if amount.IsNegative() {
			return ErrInvalidAmount
		}
	}
	if o.RewardPointsUsed < 0 {
		return ErrInvalidAmount
	}

	if o.Total.IsNegative() {
		return ErrInvalidAmount
	}
	if !o.Total.Equal(o.CalculateTotal()) {
		return ErrTotalMismatch
	}

	return nil
}

// GenerateOrderNumber: ORD-20260301-1A2B3C4D
func GenerateOrderNumber(id uuid.UUID, at time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", at.UTC().Format("20060102"), strings.ToUpper(id.String()[:8]))
}
