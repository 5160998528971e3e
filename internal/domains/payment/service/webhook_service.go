package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	orderModel "storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/payment/gateway"
	"storefront-backend/internal/domains/payment/model"
	"storefront-backend/internal/domains/payment/repository"
	"storefront-backend/pkg/logger"
)

type webhookService struct {
	repo      repository.WebhookRepository
	verifier  gateway.Verifier
	orders    PaymentEventHandler
	retention time.Duration
	now       func() time.Time
}

func NewWebhookService(
	repo repository.WebhookRepository,
	verifier gateway.Verifier,
	orders PaymentEventHandler,
	retention time.Duration,
) ServiceInterface {
	return &webhookService{
		repo:      repo,
		verifier:  verifier,
		orders:    orders,
		retention: retention,
		now:       time.Now,
	}
}

// =====================================================
// PAYMENT WEBHOOK
// =====================================================

// HandleWebhook:
// 1. verify HMAC trên raw body
// 2. ghi log (kể cả chữ ký sai)
// 3. parse + validate payload
// 4. reference đã xử lý -> no-op
// 5. chuyển success/failure cho order domain
func (s *webhookService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	valid := s.verifier.Verify(body, signature)

	entry := &model.PaymentWebhookLog{
		ID:         uuid.New(),
		Signature:  signature,
		IsValid:    valid,
		ReceivedAt: s.now(),
	}
	if json.Valid(body) {
		entry.Body = json.RawMessage(body)
	}

	var payload model.WebhookPayload
	parseErr := json.Unmarshal(body, &payload)
	if parseErr == nil {
		payload.Normalize()
		if payload.OrderID != uuid.Nil {
			entry.OrderID = &payload.OrderID
		}
		if payload.Reference != "" {
			entry.Reference = &payload.Reference
		}
		success := payload.Succeeded()
		entry.Success = &success
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return err
	}

	if !valid {
		logger.Warn("Payment webhook rejected: bad signature", map[string]interface{}{"log_id": entry.ID})
		return model.ErrInvalidSignature
	}

	if parseErr != nil {
		s.markError(ctx, entry.ID, parseErr.Error())
		return fmt.Errorf("%w: %v", model.ErrMalformedPayload, parseErr)
	}
	if err := payload.Validate(); err != nil {
		s.markError(ctx, entry.ID, err.Error())
		return err
	}

	if payload.Reference != "" {
		done, err := s.repo.IsReferenceProcessed(ctx, payload.Reference)
		if err != nil {
			return err
		}
		if done {
			logger.Info("Duplicate payment webhook ignored", map[string]interface{}{
				"order_id":  payload.OrderID,
				"reference": payload.Reference,
			})
			s.markProcessed(ctx, entry.ID)
			return nil
		}
	}

	event := orderModel.PaymentEvent{
		OrderID:   payload.OrderID,
		Success:   payload.Succeeded(),
		Reference: payload.Reference,
	}
	if err := s.orders.HandlePaymentEvent(ctx, event); err != nil {
		s.markError(ctx, entry.ID, err.Error())
		return err
	}

	s.markProcessed(ctx, entry.ID)
	return nil
}

func (s *webhookService) markProcessed(ctx context.Context, id uuid.UUID) {
	if err := s.repo.MarkAsProcessed(ctx, id, s.now()); err != nil {
		logger.Error("Failed to mark payment webhook processed", err)
	}
}

func (s *webhookService) markError(ctx context.Context, id uuid.UUID, msg string) {
	if err := s.repo.MarkProcessingError(ctx, id, msg); err != nil {
		logger.Error("Failed to record payment webhook error", err)
	}
}

// =====================================================
// RETENTION
// =====================================================

func (s *webhookService) CleanupLogs(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteOlderThan(ctx, s.now().Add(-s.retention))
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		logger.Info("Old payment webhook logs deleted", map[string]interface{}{"count": deleted})
	}
	return deleted, nil
}
