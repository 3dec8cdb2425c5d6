package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pesokrava/ecommerce_ledger/internal/config"
	"github.com/Pesokrava/ecommerce_ledger/internal/delivery/events"
	"github.com/Pesokrava/ecommerce_ledger/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env, "info", os.Stdout)
	appLogger.Info("Starting ledger notifier...")

	if !cfg.NATS.Enabled() {
		appLogger.Fatal("NATS_URL must be set for the notifier", nil)
	}

	consumer, err := events.NewConsumer(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS consumer", err)
	}
	defer consumer.Close()

	if err := consumer.Subscribe(cfg.NATS.Subject, events.LoggingHandler(appLogger)); err != nil {
		appLogger.Fatal("Failed to subscribe to ledger events", err)
	}

	appLogger.Info("Notifier started and listening for ledger events...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down notifier...")
}
