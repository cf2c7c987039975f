package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/api"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/config"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/database"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/logger"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/repository"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid config", "error", err)
	}

	if err := logger.InitWithConfig(cfg.Logger.Options()); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	logger.Info("Starting pet diabetes API", "version", api.Version, "env", cfg.Env)

	// The store connection opens on the first request.
	db := database.NewLazy(cfg.DB)
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	eventService := services.NewEventService(repository.NewEventRepository(db))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	server := api.NewServer(api.Config{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Production:   cfg.IsProduction(),
	}, eventService, registry)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		logger.Error("API server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("API server stopped")
}
