package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/payment/model"
)

// =====================================================
// WEBHOOK LOG REPOSITORY IMPLEMENTATION
// =====================================================
type webhookRepository struct {
	pool *pgxpool.Pool
}

func NewWebhookRepository(pool *pgxpool.Pool) WebhookRepository {
	return &webhookRepository{pool: pool}
}

func (r *webhookRepository) Create(ctx context.Context, log *model.PaymentWebhookLog) error {
	query := `
		INSERT INTO payment_webhook_logs (
			id, order_id, reference, success, body, signature,
			is_valid, is_processed, received_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	// body không phải JSON hợp lệ thì lưu NULL (cột JSONB)
	var body interface{}
	if len(log.Body) > 0 {
		body = []byte(log.Body)
	}

	_, err := r.pool.Exec(ctx, query,
		log.ID,
		log.OrderID,
		log.Reference,
		log.Success,
		body,
		log.Signature,
		log.IsValid,
		log.IsProcessed,
		log.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create webhook log: %w", err)
	}
	return nil
}

func (r *webhookRepository) IsReferenceProcessed(ctx context.Context, reference string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM payment_webhook_logs
			WHERE reference = $1
			AND is_processed = true
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, reference).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check idempotency: %w", err)
	}
	return exists, nil
}

// MarkAsProcessed: gọi sau khi order đã được cập nhật
func (r *webhookRepository) MarkAsProcessed(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE payment_webhook_logs
		SET is_processed = true, processed_at = $2, processing_error = NULL
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to mark webhook as processed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", model.ErrWebhookNotFound, id)
	}
	return nil
}

// MarkProcessingError: chữ ký đúng nhưng xử lý lỗi (order không tồn tại, DB lỗi ...)
func (r *webhookRepository) MarkProcessingError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	query := `
		UPDATE payment_webhook_logs
		SET processing_error = $2
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, errorMsg)
	if err != nil {
		return fmt.Errorf("failed to mark processing error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", model.ErrWebhookNotFound, id)
	}
	return nil
}

func (r *webhookRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM payment_webhook_logs WHERE received_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old webhook logs: %w", err)
	}
	return result.RowsAffected(), nil
}
