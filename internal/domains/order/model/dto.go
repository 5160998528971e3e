package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// CHECKOUT
// =====================================================

// CreateOrderRequest: items, discount và reward đều lấy từ cart, không nhận số tiền từ client
type CreateOrderRequest struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
	AddressID     *uuid.UUID    `json:"address_id"`
}

func (r CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PaymentMethod, validation.Required,
			validation.In(PaymentMethodCOD, PaymentMethodOnline).Error("must be cod or online")),
	)
}

type CreateOrderResponse struct {
	OrderID              uuid.UUID       `json:"order_id"`
	OrderNumber          string          `json:"order_number"`
	Status               OrderStatus     `json:"status"`
	PaymentMethod        PaymentMethod   `json:"payment_method"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	DeliveryCharge       decimal.Decimal `json:"delivery_charge"`
	DiscountAmount       decimal.Decimal `json:"discount_amount"`
	RewardPointsUsed     int             `json:"reward_points_used"`
	RewardDiscountAmount decimal.Decimal `json:"reward_discount_amount"`
	Total                decimal.Decimal `json:"total"`
	CreatedAt            time.Time       `json:"created_at"`
}

// =====================================================
// STATUS UPDATE
// =====================================================

// UpdateStatusRequest: Version optional, nếu có thì phải khớp version hiện tại
type UpdateStatusRequest struct {
	Status         OrderStatus `json:"status"`
	Version        *int        `json:"version"`
	Reason         *string     `json:"reason"`
	TrackingNumber *string     `json:"tracking_number"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.By(func(value interface{}) error {
			if s, _ := value.(OrderStatus); !s.IsValid() {
				return validation.NewError("validation_invalid_status", "is not a valid order status")
			}
			return nil
		})),
		validation.Field(&r.Version, validation.Min(0)),
		validation.Field(&r.Reason, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&r.TrackingNumber, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

// =====================================================
// LIST / QUERY
// =====================================================

type ListOrdersRequest struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (r *ListOrdersRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Limit <= 0 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
}

func (r ListOrdersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.When(r.Status != "", validation.By(func(value interface{}) error {
			if !OrderStatus(r.Status).IsValid() {
				return validation.NewError("validation_invalid_status", "is not a valid order status")
			}
			return nil
		}))),
	)
}

func (r ListOrdersRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

type OrderDetailResponse struct {
	*Order
	History []OrderStatusHistory `json:"history"`
}

// =====================================================
// WEBHOOK EVENTS
// =====================================================

// ShippingUpdate: payload của shipping aggregator (status string + AWB)
type ShippingUpdate struct {
	OrderID uuid.UUID `json:"order_id"`
	Status  string    `json:"status"`
	AWB     string    `json:"awb"`
}

func (r ShippingUpdate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OrderID, validation.By(func(interface{}) error {
			if r.OrderID == uuid.Nil {
				return validation.NewError("validation_required", "cannot be blank")
			}
			return nil
		})),
		validation.Field(&r.Status, validation.Required),
		validation.Field(&r.AWB, validation.Length(0, 100)),
	)
}

// PaymentEvent: event đã được gateway adapter verify, core chỉ thấy success/failure
type PaymentEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	Success   bool      `json:"success"`
	Reference string    `json:"reference,omitempty"`
}

// =====================================================
// EXPORT
// =====================================================

type ExportOrdersRequest struct {
	Status string `form:"status"`
}

type ExportOrdersResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

// AutoProcessPayload: task order:auto_process
type AutoProcessPayload struct {
	OrderID uuid.UUID `json:"order_id"`
}
