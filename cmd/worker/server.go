package main

import (
	"context"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/shared"
	"storefront-backend/pkg/logger"
)

// asynqServer wraps asynq.Server with lifecycle logging
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates the Asynq server and starts consuming in the background
func setupAsynqServer(cfg *Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		cfg.redisOpt(),
		asynq.Config{
			Queues: map[string]int{
				shared.QueueCritical: 6,
				shared.QueueOrder:    3,
				shared.QueueEmail:    1,
			},
			Concurrency: cfg.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.ErrorWithFields("[Asynq] ❌ Task failed", err, map[string]interface{}{
					"type": task.Type(),
				})
			}),
		},
	)

	go func() {
		logger.Info("[Worker] Starting...", nil)
		if err := srv.Run(mux); err != nil {
			logger.Fatal("[Worker] Failed", err)
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks (asynq ShutdownTimeout, default 8s)
func (s *asynqServer) Shutdown() {
	logger.Info("[Worker] Shutting down...", nil)
	s.Server.Shutdown()
	logger.Info("[Worker] ✓ Gracefully stopped", nil)
}
