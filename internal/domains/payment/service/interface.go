package service

import (
	"context"

	orderModel "storefront-backend/internal/domains/order/model"
)

// PaymentEventHandler: phần của OrderService nhận event đã verify
type PaymentEventHandler interface {
	HandlePaymentEvent(ctx context.Context, event orderModel.PaymentEvent) error
}

type ServiceInterface interface {
	// HandleWebhook verify chữ ký trên raw body rồi chuyển event cho order domain
	HandleWebhook(ctx context.Context, body []byte, signature string) error

	// CleanupLogs xoá webhook log quá retention, trả số row đã xoá
	CleanupLogs(ctx context.Context) (int64, error)
}
