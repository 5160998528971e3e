package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/payment/model"
)

// WebhookRepository lưu log payment webhook (audit trail + idempotency theo reference)
type WebhookRepository interface {
	// Create được gọi ngay khi nhận webhook, trước khi xử lý
	Create(ctx context.Context, log *model.PaymentWebhookLog) error

	// IsReferenceProcessed: đã có webhook cùng reference xử lý thành công chưa
	IsReferenceProcessed(ctx context.Context, reference string) (bool, error)

	MarkAsProcessed(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkProcessingError(ctx context.Context, id uuid.UUID, errorMsg string) error

	// DeleteOlderThan xoá log cũ (cron retention)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}
