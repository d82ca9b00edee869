package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"etalase/internal/logger"
	"etalase/pkg/rabbitmq"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	cfg := LoadConfig(viper.GetViper())

	lg, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer lg.Sync()

	app, err := NewApp(cfg, lg)
	if err != nil {
		lg.Fatal("Failed to initialize app", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			lg.Error("Error closing app", zap.Error(err))
		}
	}()

	if cfg.SeedProducts {
		if err := app.SeedProducts(); err != nil {
			lg.Error("Seeding failed", zap.Error(err))
		}
	}

	if app.MQ != nil {
		consumerLog := lg.Named("cart-events")
		err := app.MQ.ConsumeCartEvents(func(e rabbitmq.CartEvent) error {
			consumerLog.Info("Cart event",
				zap.String("event", e.Event),
				zap.String("cart_id", e.CartID),
				zap.String("product_id", e.ProductID),
				zap.Int("quantity", e.Quantity),
				zap.Time("at", e.At))
			return nil
		})
		if err != nil {
			lg.Error("Failed to start cart event consumer", zap.Error(err))
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		lg.Info("Starting server", zap.String("addr", cfg.AppPort))
		if err := app.Fiber.Listen(cfg.AppPort); err != nil {
			lg.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	lg.Info("Shutting down server")
	if err := app.Fiber.Shutdown(); err != nil {
		lg.Error("Error during Fiber shutdown", zap.Error(err))
	}
	lg.Info("Server gracefully stopped")
}
