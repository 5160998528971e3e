package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type LogCleaner interface {
	CleanupLogs(ctx context.Context) (int64, error)
}

// CleanupWebhookLogsHandler chạy theo cron, xoá payment webhook log quá retention
type CleanupWebhookLogsHandler struct {
	cleaner LogCleaner
}

func NewCleanupWebhookLogsHandler(cleaner LogCleaner) *CleanupWebhookLogsHandler {
	return &CleanupWebhookLogsHandler{cleaner: cleaner}
}

func (h *CleanupWebhookLogsHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	deleted, err := h.cleaner.CleanupLogs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to cleanup payment webhook logs")
		return err
	}

	log.Info().Int64("deleted", deleted).Msg("Payment webhook logs cleanup finished")
	return nil
}
