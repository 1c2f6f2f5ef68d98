package main

import (
	"context"
	"log"
	"os"

	"github.com/bpims/pos-api/internal/application/service"
	"github.com/bpims/pos-api/internal/config"
	"github.com/bpims/pos-api/internal/infrastructure/cache"
	"github.com/bpims/pos-api/internal/infrastructure/database"
	"github.com/bpims/pos-api/internal/infrastructure/repository"
	"github.com/bpims/pos-api/internal/presentation/http/handler"
	"github.com/bpims/pos-api/internal/presentation/http/routes"
	"github.com/bpims/pos-api/pkg/clock"
	"github.com/bpims/pos-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Catalog cache: Redis when configured, noop otherwise
	var catalog cache.CatalogCache = cache.NoopCatalogCache{}
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCatalogCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(context.Background()); err != nil {
			log.Printf("Warning: Redis unavailable, falling back to uncached reads: %v", err)
		} else {
			defer redisCache.Close()
			catalog = redisCache
		}
	}

	// Business clock for slip numbering and trading-hours folding
	business := clock.NewBusiness(clock.SystemClock{}, cfg.Business.TimezoneOffsetHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	itemRepo := repository.NewItemRepository(db)
	branchItemRepo := repository.NewBranchItemRepository(db)
	cartRepo := repository.NewCartRepository(db)
	cartItemRepo := repository.NewCartItemRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	transactionItemRepo := repository.NewTransactionItemRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	loyaltyRepo := repository.NewLoyaltyRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	uow := repository.NewUnitOfWork(db)

	// Initialize services
	loyaltyService := service.NewLoyaltyService(loyaltyRepo, customerRepo, business)
	cartService := service.NewCartService(
		cartRepo, cartItemRepo, itemRepo, branchItemRepo,
		userRepo, branchRepo, customerRepo, uow, catalog,
	)
	paymentService := service.NewPaymentService(
		cartRepo, cartItemRepo, userRepo, branchRepo,
		customerRepo, transactionRepo, loyaltyService, uow, business, &cfg.Business,
	)
	transactionService := service.NewTransactionService(transactionRepo, transactionItemRepo, customerRepo, uow)
	itemService := service.NewItemService(itemRepo, branchItemRepo, catalog)
	customerService := service.NewCustomerService(customerRepo, loyaltyService)
	authService := service.NewAuthService(userRepo, jwtManager)
	reportService := service.NewReportService(reportRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Cart:        handler.NewCartHandler(cartService),
		Transaction: handler.NewTransactionHandler(paymentService, transactionService),
		Item:        handler.NewItemHandler(itemService),
		Customer:    handler.NewCustomerHandler(customerService),
		Report:      handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Start server
	port := cfg.App.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	log.Printf("Starting %s on port %s", cfg.App.Name, port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
