package routes

import (
	"time"

	"github.com/bpims/pos-api/internal/config"
	"github.com/bpims/pos-api/internal/domain/entity"
	domainRepo "github.com/bpims/pos-api/internal/domain/repository"
	"github.com/bpims/pos-api/internal/presentation/http/handler"
	"github.com/bpims/pos-api/internal/presentation/http/middleware"
	"github.com/bpims/pos-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Cart        *handler.CartHandler
	Transaction *handler.TransactionHandler
	Item        *handler.ItemHandler
	Customer    *handler.CustomerHandler
	Report      *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-branch rate limiter
		rateLimiter := middleware.NewBranchRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	rg.GET("/auth/profile", h.Auth.Profile)

	cart := rg.Group("/cart")
	{
		cart.GET("", h.Cart.GetCart)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
		cart.PUT("/discount", h.Cart.UpdateDiscount)
		cart.PUT("/delivery-fee", h.Cart.UpdateDeliveryFee)
		cart.PUT("/customer", h.Cart.UpdateCustomer)
	}

	// Checkout carries the idempotency guard against double submits.
	rg.POST("/checkout", middleware.CheckoutIdempotency(deps.IdempotencyRepo), h.Transaction.Checkout)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		// Registered before :id so "oldest" is not parsed as an ID.
		transactions.GET("/oldest", h.Transaction.Oldest)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.POST("/:id/void", h.Transaction.Void)
	}

	items := rg.Group("/items")
	{
		items.GET("", h.Item.List)
		items.GET("/low-stock", h.Item.LowStock)
		items.GET("/:id", h.Item.Get)
		items.POST("", middleware.RequireRole(entity.RoleHQ), h.Item.Create)
		items.POST("/stock", h.Item.AdjustStock)
	}

	customers := rg.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("", h.Customer.Create)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	reports := rg.Group("/reports")
	{
		reports.GET("/daily-sales", h.Report.DailySales)
		reports.GET("/top-items", h.Report.TopItems)
	}
}
