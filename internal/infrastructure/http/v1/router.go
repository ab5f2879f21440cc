// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"barstock/internal/domain/allocation"
	"barstock/internal/domain/catalogs/item"
	"barstock/internal/domain/catalogs/location"
	"barstock/internal/domain/purchasing"
	"barstock/internal/domain/registers/locationstock"
	"barstock/internal/domain/registers/transfer"
	"barstock/internal/infrastructure/http/v1/handlers"
	"barstock/internal/infrastructure/http/v1/middleware"
	"barstock/internal/infrastructure/storage/postgres"
	"barstock/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	Items      *item.Service
	Locations  *location.Service
	Stock      *locationstock.Service
	Purchasing *purchasing.Service
	Allocation *allocation.Service
	Transfers  *transfer.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	itemHandler := handlers.NewItemHandler(base, cfg.Items)
	locationHandler := handlers.NewLocationHandler(base, cfg.Locations, cfg.Stock)
	purchaseHandler := handlers.NewPurchaseHandler(base, cfg.Purchasing)
	allocationHandler := handlers.NewAllocationHandler(base, cfg.Allocation)
	transferHandler := handlers.NewTransferHandler(base, cfg.Transfers)

	// API v1. Authentication happens at the fronting gateway; the caller
	// identity arrives via trusted headers.
	api := router.Group("/api/v1")
	api.Use(middleware.UserContext())
	{
		items := api.Group("/items")
		{
			items.POST("", itemHandler.Create)
			items.GET("", itemHandler.List)
			items.GET("/:id", itemHandler.GetByID)
		}

		locations := api.Group("/locations")
		{
			locations.POST("", locationHandler.Create)
			locations.GET("", locationHandler.List)
			locations.GET("/:id", locationHandler.GetByID)
			locations.GET("/:id/stock", locationHandler.GetStock)
		}

		purchases := api.Group("/purchases")
		{
			purchases.POST("", purchaseHandler.Record)
			purchases.GET("", purchaseHandler.List)
			purchases.GET("/:id", purchaseHandler.GetByID)
		}

		api.POST("/allocations", allocationHandler.Allocate)

		registers := api.Group("/registers")
		{
			registers.GET("/transfers", transferHandler.List)
			registers.GET("/transfers/reconciliation", transferHandler.Reconcile)
		}
	}

	return router
}
