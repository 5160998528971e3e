// internal/infrastructure/email/job/email_handler.go
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"storefront-backend/internal/infrastructure/email"
	"storefront-backend/internal/shared/utils"
)

// ============================================
// Order Email Handler
// ============================================

// OrderEmailHandler xử lý một loại email của order (confirmation, cancellation ...)
type OrderEmailHandler struct {
	kind string
	send func(ctx context.Context, data email.OrderEmailData) error
}

func NewOrderConfirmationHandler(svc email.EmailService) *OrderEmailHandler {
	return &OrderEmailHandler{kind: "order_confirmation", send: svc.SendOrderConfirmation}
}

func NewOrderCancellationHandler(svc email.EmailService) *OrderEmailHandler {
	return &OrderEmailHandler{kind: "order_cancellation", send: svc.SendOrderCancellation}
}

func NewOrderShippedHandler(svc email.EmailService) *OrderEmailHandler {
	return &OrderEmailHandler{kind: "order_shipped", send: svc.SendOrderShipped}
}

func NewPaymentFailedHandler(svc email.EmailService) *OrderEmailHandler {
	return &OrderEmailHandler{kind: "payment_failed", send: svc.SendPaymentFailed}
}

func (h *OrderEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.OrderEmailData
	if err := utils.UnmarshalTask(task, &payload); err != nil {
		log.Error().Err(err).Str("kind", h.kind).Msg("Failed to unmarshal order email payload")
		// payload hỏng thì retry cũng vô ích
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	if payload.Email == "" {
		log.Warn().Str("kind", h.kind).Str("order_number", payload.OrderNumber).Msg("Order email skipped: no recipient")
		return nil
	}

	if err := h.send(ctx, payload); err != nil {
		log.Error().Err(err).
			Str("kind", h.kind).
			Str("order_number", payload.OrderNumber).
			Msg("Failed to send order email")
		return fmt.Errorf("send %s email: %w", h.kind, err)
	}

	log.Info().
		Str("kind", h.kind).
		Str("order_number", payload.OrderNumber).
		Msg("Order email sent")

	return nil
}
