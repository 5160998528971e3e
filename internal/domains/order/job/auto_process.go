package job

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/shared/utils"
)

// AutoProcessor là phần của OrderService mà worker cần
type AutoProcessor interface {
	AutoProcess(ctx context.Context, orderID uuid.UUID) error
	SweepAutoProcess(ctx context.Context) (int, error)
}

// ============================================
// Auto-process: confirmed -> processing
// ============================================

type AutoProcessHandler struct {
	orders AutoProcessor
}

func NewAutoProcessHandler(orders AutoProcessor) *AutoProcessHandler {
	return &AutoProcessHandler{orders: orders}
}

func (h *AutoProcessHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.AutoProcessPayload
	if err := utils.UnmarshalTask(task, &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal auto-process payload")
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.OrderID == uuid.Nil {
		return fmt.Errorf("%w: missing order_id", asynq.SkipRetry)
	}

	if err := h.orders.AutoProcess(ctx, payload.OrderID); err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID.String()).Msg("Auto-process failed")
		return fmt.Errorf("auto-process order %s: %w", payload.OrderID, err)
	}
	return nil
}

// ============================================
// Sweep: cron re-enqueue task bị mất
// ============================================

type SweepHandler struct {
	orders AutoProcessor
}

func NewSweepHandler(orders AutoProcessor) *SweepHandler {
	return &SweepHandler{orders: orders}
}

func (h *SweepHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	n, err := h.orders.SweepAutoProcess(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Sweep of confirmed orders failed")
		return err
	}

	log.Debug().Int("requeued", n).Msg("Sweep of confirmed orders finished")
	return nil
}
