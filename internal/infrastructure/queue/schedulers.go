package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/config"
	"storefront-backend/internal/shared"
	"storefront-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterJobs đăng ký tất cả cron jobs
func (s *Scheduler) RegisterJobs() error {
	if err := s.registerSweepConfirmedOrdersJob(); err != nil {
		return err
	}
	return s.registerCleanupWebhookLogsJob()
}

// ================================================
// JOB: Sweep confirmed orders
// ================================================
// Task confirmed -> processing có thể bị mất (Redis flush, enqueue lỗi sau commit).
// Sweep định kỳ enqueue lại cho các order đã thanh toán còn kẹt ở confirmed.
func (s *Scheduler) registerSweepConfirmedOrdersJob() error {
	task := asynq.NewTask(shared.TypeOrderSweepConfirmed, nil)

	_, err := s.scheduler.Register(
		s.jobConfig.SweepConfirmedOrdersCron,
		task,
		asynq.Queue(shared.QueueOrder),
		asynq.MaxRetry(1),
		asynq.Timeout(2*time.Minute),
		// không chạy chồng nếu lần trước chưa xong
		asynq.Unique(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register SweepConfirmedOrders job", err)
		return err
	}

	logger.Info("✓ Registered SweepConfirmedOrders", map[string]interface{}{
		"cron": s.jobConfig.SweepConfirmedOrdersCron,
	})
	return nil
}

// ================================================
// JOB: Cleanup payment webhook logs
// ================================================
func (s *Scheduler) registerCleanupWebhookLogsJob() error {
	task := asynq.NewTask(shared.TypeCleanupWebhookLogs, nil)

	_, err := s.scheduler.Register(
		s.jobConfig.CleanupWebhookLogsCron,
		task,
		asynq.Queue(shared.QueueOrder),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CleanupWebhookLogs job", err)
		return err
	}

	logger.Info("✓ Registered CleanupWebhookLogs", map[string]interface{}{
		"cron": s.jobConfig.CleanupWebhookLogsCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
