package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/bot"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/bot/handlers"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/bot/state"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/config"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/logger"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/syncclient"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	if cfg.TelegramToken == "" {
		logger.Fatal("TELEGRAM_BOT_TOKEN is required")
	}
	if err := logger.InitWithConfig(cfg.Logger.Options()); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	logger.Info("Starting pet diabetes bot")

	client, closeCache, err := syncclient.NewFromConfig(cfg)
	if err != nil {
		logger.Fatal("Failed to open event cache", "error", err)
	}
	defer closeCache()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := client.Load(ctx)
	if err != nil {
		logger.Warn("Event cache could not be read", "error", err)
	}
	logger.Info("Events loaded", "source", source, "count", client.Events().Len())

	// Conversation state lives in Redis when the cache does, so restarts keep pending prompts.
	var states state.StateManager = state.NewManager()
	if cfg.Client.CacheBackend == "redis" {
		rm, err := state.NewRedisManager(cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to initialize Redis state manager", "error", err)
		}
		defer rm.Close()
		states = rm
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, handlers.Dependencies{Events: client}, states)
	if err != nil {
		logger.Fatal("Failed to create bot", "error", err)
	}

	if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Bot stopped")
}
