package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/korjavin/fridgechef/pkg/api"
	"github.com/korjavin/fridgechef/pkg/app"
	"github.com/korjavin/fridgechef/pkg/config"
	"github.com/korjavin/fridgechef/pkg/logger"
)

func main() {
	log := logger.Global
	log.Info("Starting FridgeChef API...")

	cfg, err := config.LoadFromEnv()
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

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(rt.Chef(cfg.APIMatchThreshold, "api"), cfg.DisplayMinScore, log.WithChannel("http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Graceful shutdown failed: %v", err)
		}
	}()

	log.Info("API listening on %s", cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Server error: %v", err)
	}
}
