// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"almacen/internal/domain/catalogs/client"
	"almacen/internal/domain/catalogs/product"
	"almacen/internal/domain/catalogs/supplier"
	"almacen/internal/domain/orders"
	"almacen/internal/domain/reporting"
	"almacen/internal/infrastructure/export"
	"almacen/internal/infrastructure/http/v1/handlers"
	"almacen/internal/infrastructure/http/v1/middleware"
	"almacen/internal/infrastructure/storage/postgres"
	"almacen/pkg/logger"
)

// RouterConfig holds the wired application services the API exposes.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	SupplierService *supplier.Service
	ClientService   *client.Service
	ProductService  *product.Service
	OrderService    *orders.Service

	ReportRepo reporting.Repository
	Scheduler  *reporting.Scheduler

	// RunCtx is the application lifetime context; the scheduler poller
	// started over HTTP runs under it.
	RunCtx context.Context
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
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

	baseHandler := handlers.NewBaseHandler()

	// API v1
	api := router.Group("/api/v1")
	{
		catalogs := api.Group("/catalog")
		{
			supplierHandler := handlers.NewSupplierHandler(baseHandler, cfg.SupplierService)
			suppliers := catalogs.Group("/suppliers")
			suppliers.POST("", supplierHandler.Create)
			suppliers.GET("", supplierHandler.List)
			suppliers.GET("/:id", supplierHandler.Get)
			suppliers.PUT("/:id", supplierHandler.Update)

			clientHandler := handlers.NewClientHandler(baseHandler, cfg.ClientService)
			clients := catalogs.Group("/clients")
			clients.POST("", clientHandler.Create)
			clients.GET("", clientHandler.List)
			clients.GET("/:id", clientHandler.Get)
			clients.PUT("/:id", clientHandler.Update)

			productHandler := handlers.NewProductHandler(baseHandler, cfg.ProductService)
			products := catalogs.Group("/products")
			products.POST("", productHandler.Create)
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
		}

		orderHandler := handlers.NewOrderHandler(baseHandler, cfg.OrderService)
		ordersGroup := api.Group("/orders")
		{
			ordersGroup.POST("", orderHandler.Create)
			ordersGroup.GET("", orderHandler.List)
			ordersGroup.GET("/:id", orderHandler.Get)
		}

		reportsHandler := handlers.NewReportsHandler(
			baseHandler, cfg.ReportRepo, cfg.Scheduler, export.NewExcelWriter(), cfg.RunCtx,
		)
		reports := api.Group("/reports")
		{
			reports.GET("", reportsHandler.List)
			reports.GET("/:id", reportsHandler.Get)
			reports.GET("/:id/export", reportsHandler.Export)
			reports.POST("/manual", reportsHandler.GenerateManual)
			reports.POST("/backfill", reportsHandler.Backfill)
		}

		scheduler := api.Group("/scheduler")
		{
			scheduler.GET("/status", reportsHandler.Status)
			scheduler.POST("/start", reportsHandler.Start)
			scheduler.POST("/stop", reportsHandler.Stop)
		}
	}

	return router
}
