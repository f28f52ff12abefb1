package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"pizzeria/cmd"

	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cmd.NewCompositionRoot(configs, logger)
	app, err := cmd.NewApp(ctx, configs, root, logger)
	if err != nil {
		_ = root.Close()
		log.Fatalf("Error building services: %v", err)
	}

	logger.Info("pizzeria started", "services", configs.Services, "broker", configs.Broker)
	if err := app.Run(ctx); err != nil {
		log.Fatalf("Error running services: %v", err)
	}
	logger.Info("pizzeria stopped")
}

func getConfigs() cmd.Config {
	lookup, err := cmd.EnvLookup(".env")
	if err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configs, err := cmd.LoadConfig(lookup)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return configs
}
