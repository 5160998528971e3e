// cmd/worker/main.go
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/container"
	"storefront-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables", nil)
	}
	logger.Init(utils.GetEnvVariable("APP_ENV", "development"))

	// Worker dùng chung dependency graph với API (order service, payment service)
	c, err := container.NewContainer()
	if err != nil {
		logger.Fatal("[Container] Failed to initialize", err)
	}
	defer c.Cleanup()

	cfg := loadConfig(c.Config)

	handlers := initializeHandlers(c, cfg)

	srv := setupAsynqServer(cfg, handlers)

	scheduler := setupScheduler(cfg)

	if err := startServices(cfg); err != nil {
		logger.Fatal("[Startup] Health check failed", err)
	}

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("[Shutdown] Gracefully stopping...", nil)
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("[Shutdown] ✓ Stopped", nil)
}
