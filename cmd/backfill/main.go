// Package main is a one-shot runner for the historical report backfill.
// It walks every anchored week window that contains unreported orders,
// generates the missing reports and exits. Safe to re-run: windows that
// already have their orders claimed produce nothing.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"almacen/internal/domain/reporting"
	"almacen/internal/infrastructure/storage/postgres"
	"almacen/internal/infrastructure/storage/postgres/order_repo"
	"almacen/internal/infrastructure/storage/postgres/report_repo"
	"almacen/pkg/logger"
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

	ctx := context.Background()

	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	orderRepo := order_repo.NewOrderRepo(txManager)

	snapshotCodec, err := postgres.NewSnapshotCodec()
	if err != nil {
		log.Fatalw("failed to initialize snapshot codec", "error", err)
	}
	reportRepo := report_repo.NewReportRepo(txManager, snapshotCodec, orderRepo)

	anchor := reporting.Anchor{
		Weekday: time.Weekday(getEnvInt("REPORT_ANCHOR_WEEKDAY", int(reporting.DefaultAnchor.Weekday))),
		Hour:    getEnvInt("REPORT_ANCHOR_HOUR", reporting.DefaultAnchor.Hour),
	}
	scheduler := reporting.NewScheduler(reportRepo, reporting.SchedulerConfig{
		Anchor: anchor,
	}, log)

	log.Infow("running historical backfill",
		"anchor_weekday", anchor.Weekday.String(),
		"anchor_hour", anchor.Hour,
	)

	result := scheduler.RunHistoricalBackfill(ctx)

	log.Infow("backfill finished",
		"success", result.Success,
		"reports_generated", result.ReportsGenerated,
		"errors", len(result.Errors),
	)
	for _, msg := range result.Errors {
		log.Errorw("backfill window failed", "error", msg)
	}

	if !result.Success {
		os.Exit(1)
	}
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
