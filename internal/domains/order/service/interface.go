package service

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/shared/auth"
)

// =====================================================
// ORDER SERVICE INTERFACE
// =====================================================
type OrderService interface {
	// Checkout từ cart của principal
	CreateOrder(ctx context.Context, principal auth.Principal, req model.CreateOrderRequest) (*model.CreateOrderResponse, error)

	// Owner hoặc admin
	GetOrder(ctx context.Context, principal auth.Principal, orderID uuid.UUID) (*model.OrderDetailResponse, error)
	ListOrders(ctx context.Context, principal auth.Principal, req model.ListOrdersRequest) ([]model.Order, int, error)

	// UpdateStatus: customer chỉ được cancel order của mình, admin theo bảng transition
	UpdateStatus(ctx context.Context, principal auth.Principal, orderID uuid.UUID, req model.UpdateStatusRequest) (*model.Order, error)

	// Admin
	ListAllOrders(ctx context.Context, req model.ListOrdersRequest) ([]model.Order, int, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
	ExportOrders(ctx context.Context, req model.ExportOrdersRequest) (*model.ExportOrdersResponse, error)

	// System (worker, webhooks)
	AutoProcess(ctx context.Context, orderID uuid.UUID) error
	SweepAutoProcess(ctx context.Context) (int, error)
	HandleShippingUpdate(ctx context.Context, update model.ShippingUpdate) error
	HandlePaymentEvent(ctx context.Context, event model.PaymentEvent) error
}
