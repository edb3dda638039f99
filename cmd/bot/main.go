package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/korjavin/fridgechef/pkg/app"
	"github.com/korjavin/fridgechef/pkg/config"
	"github.com/korjavin/fridgechef/pkg/fridge"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/state"
	"github.com/korjavin/fridgechef/pkg/stats"
	"github.com/korjavin/fridgechef/pkg/storage"
	"github.com/korjavin/fridgechef/pkg/telegram"
)

func main() {
	log := logger.Global
	log.Info("Starting FridgeChef bot...")

	// Load configuration
	cfg, err := config.LoadFromEnv(config.RequireBotToken)
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := app.New(ctx, cfg)
	if err != nil {
		log.Error("Failed to start: %v", err)
		os.Exit(1)
	}
	defer rt.Close()
	log = rt.Logger

	bot, err := telegram.New(cfg.BotToken)
	if err != nil {
		log.Error("Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}

	var detector telegram.Detector
	if rt.OpenAI != nil {
		detector = rt.OpenAI
	}

	handlers := telegram.NewHandlers(
		bot,
		fridge.New(storage.NewPantryStore(rt.Store)),
		rt.Chef(cfg.BotMatchThreshold, "bot"),
		detector,
		state.New(),
		cfg.DisplayMinScore,
	).WithStats(stats.New(rt.Store))

	log.Info("Bot is now running. Press CTRL-C to exit.")
	if err := bot.Start(ctx, handlers.Commands(), handlers.Callbacks(), handlers.Default); err != nil && ctx.Err() == nil {
		log.Error("Error running bot: %v", err)
	}
	log.Info("Shutting down...")
}
