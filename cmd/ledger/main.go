package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/Pesokrava/ecommerce_ledger/internal/config"
	"github.com/Pesokrava/ecommerce_ledger/internal/delivery/console"
	"github.com/Pesokrava/ecommerce_ledger/internal/delivery/events"
	"github.com/Pesokrava/ecommerce_ledger/internal/domain"
	"github.com/Pesokrava/ecommerce_ledger/internal/pkg/logger"
	"github.com/Pesokrava/ecommerce_ledger/internal/repository/memory"
	"github.com/Pesokrava/ecommerce_ledger/internal/usecase/catalog"
	"github.com/Pesokrava/ecommerce_ledger/internal/usecase/ledger"
)

type eventPublisher interface {
	domain.EventPublisher
	Close()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env, cfg.Log.Level, os.Stderr).With("session_id", uuid.NewString())
	logger.SetGlobalLogger(appLogger)
	appLogger.Info("Starting ledger console...")

	var publisher eventPublisher = events.NopPublisher{}
	if cfg.NATS.Enabled() {
		appLogger.Info("Connecting to NATS...")
		natsPublisher, err := events.NewPublisher(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create NATS publisher", err)
		}
		publisher = natsPublisher
	}
	defer publisher.Close()

	productRepo := memory.NewProductRepository()
	orderRepo := memory.NewOrderRepository()

	catalogService := catalog.NewService(productRepo, publisher, appLogger)
	ledgerService := ledger.NewService(productRepo, orderRepo, publisher, appLogger)

	handler := console.NewHandler(
		catalogService,
		ledgerService,
		afero.NewOsFs(),
		cfg.Export.FileMode,
		os.Stdout,
		appLogger,
	)
	repl := console.NewREPL(handler, cfg.Console, os.Stdout, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := repl.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		appLogger.Error("Console stopped with error", err)
	}

	appLogger.Info("Ledger console stopped")
}
