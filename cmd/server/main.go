package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FaisalAwa/examforge/internal/api"
	"github.com/FaisalAwa/examforge/internal/builder"
	"github.com/FaisalAwa/examforge/internal/config"
	"github.com/FaisalAwa/examforge/internal/pipeline"
	"github.com/FaisalAwa/examforge/internal/vision"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize vision backends.
	gemini, err := vision.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Error("gemini client init failed", "error", err)
		os.Exit(1)
	}
	claude := vision.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	vs := vision.NewService(gemini, claude, log, cfg.VisionRetries)

	// Initialize pipeline.
	b := builder.New(vs, log)
	orch := pipeline.NewOrchestrator(cfg, b, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, vs, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		gemini.Close()
	}()

	log.Info("starting examforge", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
