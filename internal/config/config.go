package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	MinIO    MinIOConfig
	Order    OrderConfig
	Reward   RewardConfig
	Webhook  WebhookConfig
	Jobs     JobConfig
}

type AppConfig struct {
	Name           string
	Environment    string // development, staging, production
	Port           string
	Version        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// URL dùng cho golang-migrate (postgres driver qua lib/pq)
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode)
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

type SMTPConfig struct {
	Host string
	Port string
	From string
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	URLExpiry time.Duration // presigned URL lifetime
}

// =====================================================
// ORDER / CHECKOUT
// =====================================================

type OrderConfig struct {
	// AutoProcessDelay: confirmed -> processing sau khoảng này (nếu đã thanh toán)
	AutoProcessDelay      time.Duration
	DeliveryBaseCharge    decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
}

type RewardConfig struct {
	PointsPerUnit int // 10 points = 1 đơn vị tiền
	AccrualUnit   int // 1 point cho mỗi AccrualUnit của order total
}

type WebhookConfig struct {
	ShippingTokenHash string // bcrypt hash
	PaymentSecret     string // HMAC-SHA256 secret
	LogRetention      time.Duration
}

// JobConfig: cron spec cho scheduler của worker
type JobConfig struct {
	SweepConfirmedOrdersCron string
	CleanupWebhookLogsCron   string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "Storefront API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "8080"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "storefront"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "localhost"),
			Port: getEnv("SMTP_PORT", "1025"),
			From: getEnv("SMTP_FROM", "orders@storefront.dev"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "storefront-reports"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			URLExpiry: getEnvDuration("MINIO_URL_EXPIRY", time.Hour),
		},
		Order: OrderConfig{
			AutoProcessDelay:      getEnvDuration("ORDER_AUTO_PROCESS_DELAY", 30*time.Minute),
			DeliveryBaseCharge:    getEnvDecimal("DELIVERY_BASE_CHARGE", decimal.NewFromInt(100)),
			FreeDeliveryThreshold: getEnvDecimal("FREE_DELIVERY_THRESHOLD", decimal.NewFromInt(1500)),
		},
		Reward: RewardConfig{
			PointsPerUnit: getEnvInt("REWARD_POINTS_PER_UNIT", 10),
			AccrualUnit:   getEnvInt("REWARD_ACCRUAL_UNIT", 100),
		},
		Webhook: WebhookConfig{
			ShippingTokenHash: getEnv("SHIPPING_WEBHOOK_TOKEN_HASH", ""),
			PaymentSecret:     getEnv("PAYMENT_WEBHOOK_SECRET", ""),
			LogRetention:      getEnvDuration("PAYMENT_WEBHOOK_LOG_RETENTION", 30*24*time.Hour),
		},
		Jobs: JobConfig{
			SweepConfirmedOrdersCron: getEnv("JOB_SWEEP_CONFIRMED_CRON", "*/10 * * * *"),
			CleanupWebhookLogsCron:   getEnv("JOB_CLEANUP_WEBHOOK_LOGS_CRON", "0 3 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Order.AutoProcessDelay <= 0 {
		return fmt.Errorf("ORDER_AUTO_PROCESS_DELAY must be positive")
	}
	if c.Order.DeliveryBaseCharge.IsNegative() {
		return fmt.Errorf("DELIVERY_BASE_CHARGE must not be negative")
	}
	if !c.Order.FreeDeliveryThreshold.IsPositive() {
		return fmt.Errorf("FREE_DELIVERY_THRESHOLD must be positive")
	}
	if c.Reward.PointsPerUnit <= 0 || c.Reward.AccrualUnit <= 0 {
		return fmt.Errorf("REWARD_POINTS_PER_UNIT and REWARD_ACCRUAL_UNIT must be positive")
	}
	if _, err := cron.ParseStandard(c.Jobs.SweepConfirmedOrdersCron); err != nil {
		return fmt.Errorf("invalid JOB_SWEEP_CONFIRMED_CRON %q: %w", c.Jobs.SweepConfirmedOrdersCron, err)
	}
	if _, err := cron.ParseStandard(c.Jobs.CleanupWebhookLogsCron); err != nil {
		return fmt.Errorf("invalid JOB_CLEANUP_WEBHOOK_LOGS_CRON %q: %w", c.Jobs.CleanupWebhookLogsCron, err)
	}
	if c.Webhook.LogRetention <= 0 {
		return fmt.Errorf("PAYMENT_WEBHOOK_LOG_RETENTION must be positive")
	}

	// Production environment phải có secrets
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Webhook.PaymentSecret == "" {
			return fmt.Errorf("PAYMENT_WEBHOOK_SECRET must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	value, err := decimal.NewFromString(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
