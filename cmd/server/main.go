// Package main is the entry point for the barstock API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"barstock/internal/config"
	"barstock/internal/domain/allocation"
	"barstock/internal/domain/catalogs/item"
	"barstock/internal/domain/catalogs/location"
	"barstock/internal/domain/purchasing"
	"barstock/internal/domain/registers/locationstock"
	"barstock/internal/domain/registers/transfer"
	v1 "barstock/internal/infrastructure/http/v1"
	"barstock/internal/infrastructure/storage/postgres"
	"barstock/internal/infrastructure/storage/postgres/catalog_repo"
	"barstock/internal/infrastructure/storage/postgres/document_repo"
	"barstock/internal/infrastructure/storage/postgres/register_repo"
	"barstock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting barstock server")

	// --- Database ---
	poolCfg := postgres.PoolConfig{
		DSN:               cfg.DatabaseURL,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBConnLifetime,
		MaxConnIdleTime:   cfg.DBConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthPeriod,
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	itemRepo := catalog_repo.NewItemRepo(txManager)
	locationRepo := catalog_repo.NewLocationRepo(txManager)
	purchaseRepo := document_repo.NewPurchaseRepo(txManager)
	stockRepo := register_repo.NewLocationStockRepo(txManager)
	transferRepo := register_repo.NewTransferRepo(txManager)

	// --- Outbox publisher (events land in the mutation transaction) ---
	publisher := postgres.NewOutboxPublisher(txManager)

	// --- Services ---
	itemService := item.NewService(itemRepo)
	locationService := location.NewService(locationRepo)
	stockService := locationstock.NewService(stockRepo)
	transferService := transfer.NewService(transferRepo, stockRepo)
	purchasingService := purchasing.NewService(purchaseRepo, itemRepo, txManager, publisher)
	allocationService := allocation.NewService(itemRepo, stockRepo, transferRepo, txManager, publisher)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:       pool,
		Logger:     log,
		Items:      itemService,
		Locations:  locationService,
		Stock:      stockService,
		Purchasing: purchasingService,
		Allocation: allocationService,
		Transfers:  transferService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
