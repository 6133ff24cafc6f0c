package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tewankitchen/pos-api/internal/config"
	domainRepo "github.com/tewankitchen/pos-api/internal/domain/repository"
	"github.com/tewankitchen/pos-api/internal/presentation/http/handler"
	"github.com/tewankitchen/pos-api/internal/presentation/http/middleware"
	"github.com/tewankitchen/pos-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Menu        *handler.MenuHandler
	Table       *handler.TableHandler
	Checkout    *handler.CheckoutHandler
	Transaction *handler.TransactionHandler
	Report      *handler.ReportHandler
	Sync        *handler.SyncHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	AuthEnabled     bool
	Cfg             *config.Config
	Log             *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.TerminalRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RecoveryMiddleware(deps.Log))
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", h.Health.Health)

	v1 := router.Group("/api/v1")
	{
		// Public routes, limited per client IP
		public := v1.Group("")
		public.Use(deps.RateLimiter.Middleware())
		public.POST("/auth/login", h.Auth.Login)

		// Terminal routes, limited per terminal
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager, deps.AuthEnabled))
		protected.Use(deps.RateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	menu := protected.Group("/menu")
	{
		menu.GET("", h.Menu.List)
		menu.GET("/categories", h.Menu.Categories)
	}

	tables := protected.Group("/tables")
	{
		tables.GET("", h.Table.List)
		tables.GET("/occupied", h.Table.Occupied)
		tables.GET("/:id", h.Table.Get)
		tables.GET("/:id/bill", h.Table.Bill)
	}

	registerCheckoutRoutes(protected, h, deps)

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.GET("/:id", h.Transaction.Get)
	}

	reports := protected.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/daily/export", h.Report.Export)
	}

	sync := protected.Group("/sync")
	{
		sync.GET("/warnings", h.Sync.Warnings)
		sync.DELETE("/warnings", h.Sync.ClearWarnings)
	}

	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/transactions/:id", h.Printer.PrintTransaction)
		printer.POST("/tables/:id/bill", h.Printer.PrintBill)
	}
}

func registerCheckoutRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		Log:  deps.Log,
	})

	checkout := protected.Group("/checkout")
	{
		checkout.GET("", h.Checkout.Get)
		checkout.DELETE("", h.Checkout.Reset)
		checkout.PUT("/table", h.Checkout.SelectTable)
		checkout.POST("/items", h.Checkout.AddItem)
		checkout.PATCH("/items/:item_id", h.Checkout.ChangeQuantity)
		checkout.DELETE("/items/:item_id", h.Checkout.RemoveItem)
		checkout.POST("/confirm", h.Checkout.Confirm)
		checkout.PUT("/discount", h.Checkout.SetDiscount)
		checkout.PUT("/payment-method", h.Checkout.SetPaymentMethod)
		checkout.POST("/pay", idempotency, h.Checkout.Pay)
	}
}
