package main

import (
	"github.com/hibiken/asynq"

	"storefront-backend/internal/config"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

// Config holds the worker-only settings, the rest comes from the shared app config
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SMTP          config.SMTPConfig
	Jobs          config.JobConfig
	Concurrency   int
	HealthAddr    string
}

// loadConfig derives worker settings from the loaded app config
func loadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		RedisAddr:     appCfg.Redis.Host,
		RedisPassword: appCfg.Redis.Password,
		RedisDB:       appCfg.Redis.DB,
		SMTP:          appCfg.SMTP,
		Jobs:          appCfg.Jobs,
		Concurrency:   20,
		HealthAddr:    utils.GetEnvVariable("WORKER_HEALTH_ADDR", ":9999"),
	}

	logger.Info("[Config] Worker configuration loaded", map[string]interface{}{
		"redis": cfg.RedisAddr,
		"smtp":  cfg.SMTP.Host + ":" + cfg.SMTP.Port,
	})

	return cfg
}

func (c *Config) redisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: c.RedisAddr, Password: c.RedisPassword, DB: c.RedisDB}
}
