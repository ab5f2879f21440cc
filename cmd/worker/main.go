// Package main is the entry point for the barstock background worker.
// It relays outbox events into the audit log.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"barstock/internal/config"
	"barstock/internal/infrastructure/storage/postgres"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting barstock worker")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	audit, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	relay := postgres.NewOutboxRelay(
		pool.Unwrap(),
		cfg.OutboxBatchSize,
		postgres.NewAuditOutboxHandler(audit),
	)

	worker := NewRelayWorker(relay, cfg.OutboxPollInterval, log)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	wg.Wait()
	log.Info("worker stopped")
}

// RelayWorker polls the outbox and hands pending events to the audit sink.
type RelayWorker struct {
	relay        *postgres.OutboxRelay
	pollInterval time.Duration
	log          *logger.Logger
}

func NewRelayWorker(relay *postgres.OutboxRelay, pollInterval time.Duration, log *logger.Logger) *RelayWorker {
	return &RelayWorker{
		relay:        relay,
		pollInterval: pollInterval,
		log:          log.WithComponent("outbox-relay"),
	}
}

// Run processes outbox batches until the context is cancelled.
func (w *RelayWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	dlqTicker := time.NewTicker(10 * time.Minute)
	defer dlqTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			processed, err := w.relay.ProcessBatch(ctx)
			if err != nil {
				w.log.Errorw("outbox batch failed", "error", err)
				continue
			}
			if processed > 0 {
				w.log.Infow("outbox batch processed", "count", processed)
			}
		case <-dlqTicker.C:
			moved, err := w.relay.MoveToDLQ(ctx)
			if err != nil {
				w.log.Errorw("dlq sweep failed", "error", err)
				continue
			}
			if moved > 0 {
				w.log.Warnw("messages moved to dlq", "count", moved)
			}
		}
	}
}
