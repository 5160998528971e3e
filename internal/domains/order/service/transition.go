package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	invenModel "storefront-backend/internal/domains/inventory/model"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/shared/auth"
	"storefront-backend/pkg/logger"
)

const sweepBatchSize = 200

// errSkipTransition: guard quyết định không làm gì (không phải lỗi)
var errSkipTransition = errors.New("transition skipped")

type transitionCommand struct {
	orderID        uuid.UUID
	to             model.OrderStatus
	actor          auth.Principal
	source         model.HistorySource
	version        *int
	reason         *string
	trackingNumber *string

	// guard chạy sau khi đã lock order
	guard func(o *model.Order) error
}

// =====================================================
// UPDATE ORDER STATUS
// =====================================================

func (s *orderService) UpdateStatus(
	ctx context.Context,
	principal auth.Principal,
	orderID uuid.UUID,
	req model.UpdateStatusRequest,
) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	source := model.SourceUser
	if principal.IsAdmin() {
		source = model.SourceAdmin
	}

	order, _, err := s.applyTransition(ctx, transitionCommand{
		orderID:        orderID,
		to:             req.Status,
		actor:          principal,
		source:         source,
		version:        req.Version,
		reason:         req.Reason,
		trackingNumber: req.TrackingNumber,
	})
	return order, err
}

// applyTransition là đường duy nhất thay đổi status: lock order, check quyền + version +
// bảng transition, chạy side effects (hoàn kho, hoàn điểm, cộng điểm) trong cùng tx.
// Ghi lại status hiện tại là no-op (changed = false), trừ khi kèm tracking number mới.
func (s *orderService) applyTransition(ctx context.Context, cmd transitionCommand) (*model.Order, bool, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.orderRepo.RollbackTx(ctx, tx)

	order, err := s.orderRepo.GetOrderByIDForUpdateWithTx(ctx, tx, cmd.orderID)
	if err != nil {
		return nil, false, err
	}

	// 1. Quyền: customer chỉ cancel order của chính mình
	if !cmd.actor.IsAdmin() {
		if order.UserID != cmd.actor.UserID {
			return nil, false, model.ErrOrderNotFound
		}
		if cmd.to != model.OrderStatusCancelled {
			return nil, false, model.NewOrderError(model.ErrCodeForbidden,
				"Customers can only cancel their orders", model.ErrForbidden)
		}
	}

	// 2. Optimistic locking
	if cmd.version != nil && *cmd.version != order.Version {
		return nil, false, model.NewOrderError(model.ErrCodeVersionMismatch,
			"Order was modified by someone else, please refresh", model.ErrVersionMismatch)
	}

	if cmd.guard != nil {
		if err := cmd.guard(order); err != nil {
			return order, false, err
		}
	}

	// 3. Idempotent: status giữ nguyên, chỉ lưu AWB mới nếu có
	if order.Status == cmd.to {
		if !hasNewTracking(order, cmd.trackingNumber) {
			return order, false, nil
		}
		order.TrackingNumber = cmd.trackingNumber
		if err := s.orderRepo.SaveOrderWithTx(ctx, tx, order); err != nil {
			return nil, false, err
		}
		if err := s.orderRepo.CommitTx(ctx, tx); err != nil {
			return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
		}
		logger.Info("Order tracking number updated", map[string]interface{}{
			"order_id": order.ID,
			"tracking": *cmd.trackingNumber,
		})
		return order, false, nil
	}

	if !model.CanTransition(order.Status, cmd.to) {
		if cmd.to == model.OrderStatusCancelled {
			return nil, false, model.NewOrderError(model.ErrCodeOrderCannotCancel,
				fmt.Sprintf("Order with status '%s' cannot be cancelled", order.Status), model.ErrOrderCannotCancel)
		}
		return nil, false, model.NewOrderError(model.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot transition from '%s' to '%s'", order.Status, cmd.to), model.ErrInvalidTransition)
	}

	// 4. Side effects theo status đích
	from := order.Status
	now := s.now()

	switch cmd.to {
	case model.OrderStatusCancelled:
		if err := s.inventoryRepo.RestockWithTx(ctx, tx, orderStockLines(order)); err != nil {
			return nil, false, fmt.Errorf("failed to restock cancelled order: %w", err)
		}
		if err := s.rewards.RefundWithTx(ctx, tx, order.UserID, &order.ID, order.RewardPointsUsed); err != nil {
			return nil, false, fmt.Errorf("failed to refund reward points: %w", err)
		}
		order.CancellationReason = cmd.reason
		order.CancelledAt = &now

	case model.OrderStatusDelivered:
		order.DeliveredAt = &now
		// COD: giao hàng xong là đã thu tiền
		if order.PaymentMethod == model.PaymentMethodCOD && !order.IsPaid() {
			order.PaymentStatus = model.PaymentStatusPaid
			order.PaidAt = &now
		}
		if _, err := s.rewards.AccrueWithTx(ctx, tx, order.UserID, order.ID, order.Total); err != nil {
			return nil, false, fmt.Errorf("failed to accrue reward points: %w", err)
		}
	}

	if cmd.trackingNumber != nil {
		order.TrackingNumber = cmd.trackingNumber
	}
	order.Status = cmd.to

	// 5. Update với version hiện tại
	if err := s.orderRepo.SaveOrderWithTx(ctx, tx, order); err != nil {
		if errors.Is(err, model.ErrVersionMismatch) {
			return nil, false, model.NewOrderError(model.ErrCodeVersionMismatch,
				"Order was modified by someone else, please refresh", err)
		}
		return nil, false, err
	}

	// 6. Status history
	history := &model.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: &from,
		ToStatus:   cmd.to,
		Source:     cmd.source,
		Note:       cmd.reason,
	}
	if cmd.actor.UserID != uuid.Nil {
		actorID := cmd.actor.UserID
		history.ChangedBy = &actorID
	}
	if err := s.orderRepo.CreateStatusHistoryWithTx(ctx, tx, history); err != nil {
		return nil, false, err
	}

	if err := s.orderRepo.CommitTx(ctx, tx); err != nil {
		return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Order status changed", map[string]interface{}{
		"order_id": order.ID,
		"from":     from,
		"to":       cmd.to,
		"source":   cmd.source,
	})

	// Sau commit: email best-effort, lỗi không ảnh hưởng transition
	s.notifyStatusChange(ctx, order)

	return order, true, nil
}

func hasNewTracking(order *model.Order, tracking *string) bool {
	if tracking == nil || *tracking == "" {
		return false
	}
	return order.TrackingNumber == nil || *order.TrackingNumber != *tracking
}

func orderStockLines(order *model.Order) []invenModel.StockLine {
	lines := make([]invenModel.StockLine, 0, len(order.Items))
	for productID, qty := range order.ItemQuantities() {
		lines = append(lines, invenModel.StockLine{ProductID: productID, Quantity: qty})
	}
	return lines
}

// =====================================================
// DELAYED AUTO-PROCESS (worker)
// =====================================================

// AutoProcess chuyển confirmed -> processing chỉ khi payment đã settle (COD hoặc paid).
// Order chưa thanh toán giữ nguyên confirmed, payment success event sẽ đẩy tiếp.
func (s *orderService) AutoProcess(ctx context.Context, orderID uuid.UUID) error {
	_, changed, err := s.applyTransition(ctx, transitionCommand{
		orderID: orderID,
		to:      model.OrderStatusProcessing,
		actor:   auth.System(),
		source:  model.SourceSystem,
		guard: func(o *model.Order) error {
			if o.Status != model.OrderStatusConfirmed || !o.IsPaymentSettled() {
				return errSkipTransition
			}
			return nil
		},
	})

	switch {
	case errors.Is(err, errSkipTransition):
		logger.Info("Auto-process skipped", map[string]interface{}{"order_id": orderID})
		return nil
	case errors.Is(err, model.ErrOrderNotFound):
		logger.Warn("Auto-process: order no longer exists", map[string]interface{}{"order_id": orderID})
		return nil
	case err != nil:
		return err
	}

	if changed {
		logger.Info("Order auto-processed", map[string]interface{}{"order_id": orderID})
	}
	return nil
}

// SweepAutoProcess enqueue lại task cho order đã settle mà vẫn confirmed quá delay (task bị mất)
func (s *orderService) SweepAutoProcess(ctx context.Context) (int, error) {
	ids, err := s.orderRepo.ListAutoProcessCandidates(ctx, s.now().Add(-s.cfg.AutoProcessDelay), sweepBatchSize)
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		s.enqueueAutoProcess(id, 0)
	}

	if len(ids) > 0 {
		logger.Info("Swept confirmed orders", map[string]interface{}{"count": len(ids)})
	}
	return len(ids), nil
}

// =====================================================
// SHIPPING WEBHOOK
// =====================================================

func (s *orderService) HandleShippingUpdate(ctx context.Context, update model.ShippingUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}

	status, ok := model.MapShippingStatus(update.Status)
	if !ok {
		logger.Warn("Unknown shipping status ignored", map[string]interface{}{
			"order_id": update.OrderID,
			"status":   update.Status,
		})
		return nil
	}

	var tracking *string
	if update.AWB != "" {
		awb := update.AWB
		tracking = &awb
	}

	_, _, err := s.applyTransition(ctx, transitionCommand{
		orderID:        update.OrderID,
		to:             status,
		actor:          auth.System(),
		source:         model.SourceShippingWebhook,
		trackingNumber: tracking,
	})
	return err
}

// =====================================================
// PAYMENT EVENT
// =====================================================

// HandlePaymentEvent: success -> paid (+ confirmed -> processing), failure -> failed + email.
// Event lặp lại là no-op.
func (s *orderService) HandlePaymentEvent(ctx context.Context, event model.PaymentEvent) error {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.orderRepo.RollbackTx(ctx, tx)

	order, err := s.orderRepo.GetOrderByIDForUpdateWithTx(ctx, tx, event.OrderID)
	if err != nil {
		return err
	}

	// Đã paid thì bỏ qua cả success lặp lại lẫn failure đến muộn
	if order.IsPaid() {
		return nil
	}
	if !event.Success && order.PaymentStatus == model.PaymentStatusFailed {
		return nil
	}

	now := s.now()
	from := order.Status
	advanced := false

	if event.Success {
		order.PaymentStatus = model.PaymentStatusPaid
		order.PaidAt = &now
		if order.Status == model.OrderStatusConfirmed {
			order.Status = model.OrderStatusProcessing
			advanced = true
		}
		if order.Status.IsTerminal() {
			logger.Warn("Payment received for a closed order", map[string]interface{}{
				"order_id": order.ID,
				"status":   order.Status,
			})
		}
	} else {
		order.PaymentStatus = model.PaymentStatusFailed
	}

	if err := s.orderRepo.SaveOrderWithTx(ctx, tx, order); err != nil {
		return err
	}

	if advanced {
		note := "payment received"
		if event.Reference != "" {
			note = "payment received: " + event.Reference
		}
		if err := s.orderRepo.CreateStatusHistoryWithTx(ctx, tx, &model.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: &from,
			ToStatus:   order.Status,
			Source:     model.SourcePaymentWebhook,
			Note:       &note,
		}); err != nil {
			return err
		}
	}

	if err := s.orderRepo.CommitTx(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Payment event applied", map[string]interface{}{
		"order_id":       order.ID,
		"success":        event.Success,
		"payment_status": order.PaymentStatus,
		"status":         order.Status,
	})

	if !event.Success {
		s.sendPaymentFailedEmail(ctx, order)
	}
	return nil
}
