// Package main is the entry point for the almacen API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"almacen/internal/domain/catalogs/client"
	"almacen/internal/domain/catalogs/product"
	"almacen/internal/domain/catalogs/supplier"
	"almacen/internal/domain/orders"
	"almacen/internal/domain/reporting"
	v1 "almacen/internal/infrastructure/http/v1"
	"almacen/internal/infrastructure/storage/postgres"
	"almacen/internal/infrastructure/storage/postgres/catalog_repo"
	"almacen/internal/infrastructure/storage/postgres/order_repo"
	"almacen/internal/infrastructure/storage/postgres/report_repo"
	"almacen/pkg/logger"
	"almacen/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	log.Info("starting almacen server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")
	poolCfg := postgres.DefaultPoolConfig(dsn)
	if maxConns := getEnvInt("DB_MAX_CONNS", 25); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(appCtx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories and services ---
	numbers := numerator.New(pool.Unwrap())

	supplierRepo := catalog_repo.NewSupplierRepo(txManager)
	clientRepo := catalog_repo.NewClientRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	orderRepo := order_repo.NewOrderRepo(txManager)

	supplierService := supplier.NewService(supplierRepo)
	clientService := client.NewService(clientRepo)
	productService := product.NewService(productRepo)
	orderService := orders.NewService(orderRepo, numbers)

	snapshotCodec, err := postgres.NewSnapshotCodec()
	if err != nil {
		log.Fatalw("failed to initialize snapshot codec", "error", err)
	}
	reportRepo := report_repo.NewReportRepo(txManager, snapshotCodec, orderRepo)

	// --- Scheduler ---
	anchor := reporting.Anchor{
		Weekday: time.Weekday(getEnvInt("REPORT_ANCHOR_WEEKDAY", int(reporting.DefaultAnchor.Weekday))),
		Hour:    getEnvInt("REPORT_ANCHOR_HOUR", reporting.DefaultAnchor.Hour),
	}
	scheduler := reporting.NewScheduler(reportRepo, reporting.SchedulerConfig{
		Anchor:       anchor,
		PollInterval: getEnvDuration("REPORT_POLL_INTERVAL", reporting.DefaultPollInterval),
	}, log)

	// Log generated reports without blocking the poller.
	sub := scheduler.Subscribe()
	go func() {
		for report := range sub.ReportGenerated {
			log.Infow("report generated",
				"report_id", report.ID,
				"kind", report.Kind,
				"orders", len(report.OrderIDs),
			)
		}
	}()

	if getEnv("SCHEDULER_AUTOSTART", "true") == "true" {
		scheduler.Start(appCtx)
		log.Infow("scheduler started",
			"anchor_weekday", anchor.Weekday.String(),
			"anchor_hour", anchor.Hour,
		)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:            pool,
		Logger:          log,
		SupplierService: supplierService,
		ClientService:   clientService,
		ProductService:  productService,
		OrderService:    orderService,
		ReportRepo:      reportRepo,
		Scheduler:       scheduler,
		RunCtx:          appCtx,
	})

	// --- HTTP server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	scheduler.Stop()
	sub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
