package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/infrastructure/email"
	"storefront-backend/internal/infrastructure/queue"
	"storefront-backend/internal/shared"
	"storefront-backend/pkg/logger"
)

// =====================================================
// ASYNC TASKS (best-effort, chỉ log khi lỗi)
// =====================================================

func autoProcessTaskID(orderID uuid.UUID) string {
	return "order-auto-process:" + orderID.String()
}

func (s *orderService) enqueueAutoProcess(orderID uuid.UUID, delay time.Duration) {
	opts := []asynq.Option{
		asynq.Queue(shared.QueueOrder),
		asynq.MaxRetry(3),
		// TaskID chống enqueue trùng giữa checkout và sweep
		asynq.TaskID(autoProcessTaskID(orderID)),
	}
	if delay > 0 {
		opts = append(opts, asynq.ProcessIn(delay))
	}
	queue.EnqueueBestEffort(s.queue, shared.TypeOrderAutoProcess, model.AutoProcessPayload{OrderID: orderID}, opts...)
}

func (s *orderService) sendConfirmationEmail(ctx context.Context, order *model.Order, recipient string) {
	s.enqueueOrderEmail(ctx, shared.TypeSendOrderConfirmation, order, recipient)
}

func (s *orderService) sendPaymentFailedEmail(ctx context.Context, order *model.Order) {
	s.enqueueOrderEmail(ctx, shared.TypeSendPaymentFailed, order, "")
}

func (s *orderService) notifyStatusChange(ctx context.Context, order *model.Order) {
	switch order.Status {
	case model.OrderStatusCancelled:
		s.enqueueOrderEmail(ctx, shared.TypeSendOrderCancellation, order, "")
	case model.OrderStatusShipped:
		s.enqueueOrderEmail(ctx, shared.TypeSendOrderShipped, order, "")
	}
}

// enqueueOrderEmail: recipient rỗng thì tra email của chủ order
func (s *orderService) enqueueOrderEmail(ctx context.Context, taskType string, order *model.Order, recipient string) {
	if recipient == "" {
		info, err := s.userRepo.GetBasicInfo(ctx, order.UserID)
		if err != nil {
			logger.Error("Failed to load order owner for email", err)
			return
		}
		recipient = info.Email
	}

	data := email.OrderEmailData{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Email:         recipient,
		Total:         order.Total,
		PaymentMethod: string(order.PaymentMethod),
	}
	if order.CancellationReason != nil {
		data.Reason = *order.CancellationReason
	}
	if order.TrackingNumber != nil {
		data.TrackingNumber = *order.TrackingNumber
	}

	queue.EnqueueBestEffort(s.queue, taskType, data, asynq.Queue(shared.QueueEmail), asynq.MaxRetry(5))
}
