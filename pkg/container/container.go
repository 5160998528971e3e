package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/config"
	infraCache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/internal/infrastructure/queue"
	"storefront-backend/internal/infrastructure/storage"
	"storefront-backend/pkg/jwt"
	"storefront-backend/pkg/logger"

	cartHandler "storefront-backend/internal/domains/cart/handler"
	cartRepo "storefront-backend/internal/domains/cart/repository"
	cartService "storefront-backend/internal/domains/cart/service"
	deliveryHandler "storefront-backend/internal/domains/delivery/handler"
	delivery "storefront-backend/internal/domains/delivery/service"
	discountHandler "storefront-backend/internal/domains/discount/handler"
	discountRepo "storefront-backend/internal/domains/discount/repository"
	discountService "storefront-backend/internal/domains/discount/service"
	inventoryHandler "storefront-backend/internal/domains/inventory/handler"
	inventoryRepo "storefront-backend/internal/domains/inventory/repository"
	inventoryService "storefront-backend/internal/domains/inventory/service"
	orderHandler "storefront-backend/internal/domains/order/handler"
	orderRepo "storefront-backend/internal/domains/order/repository"
	orderService "storefront-backend/internal/domains/order/service"
	"storefront-backend/internal/domains/payment/gateway"
	paymentHandler "storefront-backend/internal/domains/payment/handler"
	paymentRepo "storefront-backend/internal/domains/payment/repository"
	paymentService "storefront-backend/internal/domains/payment/service"
	rewardHandler "storefront-backend/internal/domains/reward/handler"
	rewardRepo "storefront-backend/internal/domains/reward/repository"
	rewardService "storefront-backend/internal/domains/reward/service"
	userHandler "storefront-backend/internal/domains/user/handler"
	userRepo "storefront-backend/internal/domains/user/repository"
	userService "storefront-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependency graph của API process.
// Thứ tự init: Config -> Infrastructure -> Repositories -> Services -> Handlers
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      *infraCache.RedisCache
	Queue      *asynq.Client
	Storage    storage.ObjectStorage // nil nếu MinIO không kết nối được
	JWTManager *jwt.Manager
	Delivery   *delivery.Policy

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo      userRepo.RepositoryInterface
	InventoryRepo inventoryRepo.RepositoryInterface
	CartRepo      cartRepo.RepositoryInterface
	DiscountRepo  discountRepo.RepositoryInterface
	RewardRepo    rewardRepo.RepositoryInterface
	OrderRepo     orderRepo.OrderRepository
	WebhookRepo   paymentRepo.WebhookRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService      userService.ServiceInterface
	InventoryService inventoryService.ServiceInterface
	CartService      cartService.ServiceInterface
	DiscountService  discountService.ServiceInterface
	RewardService    *rewardService.RewardService // ServiceInterface + Ledger cho checkout
	OrderService     orderService.OrderService
	PaymentService   paymentService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler            *userHandler.UserHandler
	InventoryHandler       *inventoryHandler.Handler
	CartHandler            *cartHandler.Handler
	DeliveryHandler        *deliveryHandler.Handler
	DiscountPublicHandler  *discountHandler.PublicHandler
	DiscountAdminHandler   *discountHandler.AdminHandler
	RewardHandler          *rewardHandler.Handler
	OrderHandler           *orderHandler.OrderHandler
	ShippingWebhookHandler *orderHandler.ShippingWebhookHandler
	PaymentWebhookHandler  *paymentHandler.WebhookHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph.
// Sai thứ tự => nil pointer khi wiring.
func NewContainer() (*Container, error) {
	logger.Info("🔧 Initializing DI Container...", nil)

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("✅ Config loaded", map[string]interface{}{"environment": cfg.App.Environment})

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	logger.Info("✅ Database connected", nil)

	// ========================================
	// STEP 3: CACHE, QUEUE, STORAGE
	// ========================================
	c.Cache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Connect(ctx); err != nil {
		// Redis failure không critical cho read path: cached repo fallback về DB
		logger.Warn("⚠️  Redis connection failed (non-critical)", map[string]interface{}{"error": err.Error()})
	} else {
		logger.Info("✅ Redis connected", nil)
	}

	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		logger.Warn("⚠️  MinIO unavailable, order export disabled", map[string]interface{}{"error": err.Error()})
	} else {
		c.Storage = minioStorage
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	c.Delivery = delivery.NewPolicy(cfg.Order.DeliveryBaseCharge, cfg.Order.FreeDeliveryThreshold)

	// ========================================
	// STEP 4-6: REPOSITORIES -> SERVICES -> HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("🎉 DI Container initialized successfully", nil)
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.InventoryRepo = inventoryRepo.NewRepository(pool)
	c.CartRepo = cartRepo.NewPostgresRepository(pool)
	// Discount lookup đi qua Redis (read-through), write invalidate cache
	c.DiscountRepo = discountRepo.NewCachedRepository(discountRepo.NewPostgresRepository(pool), c.Cache)
	c.RewardRepo = rewardRepo.NewPostgresRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresOrderRepository(pool)
	c.WebhookRepo = paymentRepo.NewWebhookRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, cfg.JWT.AccessTokenExpiry)
	c.InventoryService = inventoryService.NewService(c.InventoryRepo)
	c.CartService = cartService.NewCartService(c.CartRepo, c.InventoryRepo, c.Delivery)
	c.DiscountService = discountService.NewDiscountService(c.DiscountRepo, c.CartRepo)
	c.RewardService = rewardService.NewRewardService(c.RewardRepo, c.CartRepo, c.Delivery, cfg.Reward)

	deps := orderService.Dependencies{
		OrderRepo:     c.OrderRepo,
		CartRepo:      c.CartRepo,
		InventoryRepo: c.InventoryRepo,
		UserRepo:      c.UserRepo,
		DiscountRepo:  c.DiscountRepo,
		Rewards:       c.RewardService,
		Delivery:      c.Delivery,
		Queue:         c.Queue,
		Config:        cfg.Order,
	}
	// interface chứa (*MinIOStorage)(nil) khác nil => chỉ gán khi có storage
	if c.Storage != nil {
		deps.Storage = c.Storage
	}
	c.OrderService = orderService.NewOrderService(deps)

	c.PaymentService = paymentService.NewWebhookService(
		c.WebhookRepo,
		gateway.NewHMACVerifier(cfg.Webhook.PaymentSecret),
		c.OrderService,
		cfg.Webhook.LogRetention,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.InventoryHandler = inventoryHandler.NewHandler(c.InventoryService)
	c.CartHandler = cartHandler.NewHandler(c.CartService)
	c.DeliveryHandler = deliveryHandler.NewHandler(c.Delivery)
	c.DiscountPublicHandler = discountHandler.NewPublicHandler(c.DiscountService)
	c.DiscountAdminHandler = discountHandler.NewAdminHandler(c.DiscountService)
	c.RewardHandler = rewardHandler.NewHandler(c.RewardService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.ShippingWebhookHandler = orderHandler.NewShippingWebhookHandler(c.OrderService)
	c.PaymentWebhookHandler = paymentHandler.NewWebhookHandler(c.PaymentService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	logger.Info("🧹 Cleaning up container resources...", nil)

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("Failed to close task queue client", err)
		}
	}

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	logger.Info("✅ Container cleanup completed", nil)
}
