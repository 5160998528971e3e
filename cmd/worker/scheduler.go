package main

import (
	"storefront-backend/internal/infrastructure/queue"
	"storefront-backend/pkg/logger"
)

// asynqScheduler wraps queue.Scheduler with lifecycle logging
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler registers the cron jobs (sweep, webhook log cleanup) and starts the scheduler
func setupScheduler(cfg *Config) *asynqScheduler {
	scheduler := queue.NewScheduler(cfg.redisOpt(), cfg.Jobs)

	if err := scheduler.RegisterJobs(); err != nil {
		logger.Fatal("[Scheduler] Failed to register", err)
	}

	go func() {
		logger.Info("[Scheduler] Starting...", nil)
		if err := scheduler.Start(); err != nil {
			logger.Fatal("[Scheduler] Failed", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

// Shutdown gracefully shuts down the scheduler
func (s *asynqScheduler) Shutdown() {
	logger.Info("[Scheduler] Shutting down...", nil)
	s.Scheduler.Shutdown()
	logger.Info("[Scheduler] ✓ Stopped", nil)
}
