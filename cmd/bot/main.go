package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dailyvocab/internal/app"
	"dailyvocab/internal/config"
	"dailyvocab/internal/handler"
	"dailyvocab/internal/httpapi"
	"dailyvocab/internal/logger"
	"dailyvocab/internal/middleware"
	"dailyvocab/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Load configuration
	cfg, err := config.LoadBot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting DailyVocab Bot")

	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer a.Close()

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			log.Error("Bot handler failed", zap.Error(err))
		},
	})
	if err != nil {
		log.Fatal("Failed to create bot", zap.Error(err))
	}

	log.Info("Telegram bot initialized")

	// Initialize handler
	bot.Use(middleware.UserMiddleware(a.Users, log))
	h := handler.NewHandler(bot, a.Users, a.Words, a.Settings, a.Practice, a.Games, a.Speech, cfg.GameMinTick, log)
	h.RegisterHandlers()

	log.Info("Handlers registered")

	// Start warm-up job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runWarmupJob(ctx, a.Warmup, cfg.WarmupInterval, log)

	// Optional HTTP API next to the bot
	var srv *http.Server
	if cfg.HTTPAddr != "" {
		srv = httpapi.NewServer(cfg.HTTPAddr, a.APIHandler())
		go func() {
			log.Info("HTTP API starting", zap.String("addr", cfg.HTTPAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("HTTP API failed", zap.Error(err))
			}
		}()
	}

	// Start bot in background
	go func() {
		log.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	log.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	h.Shutdown()
	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP API forced to shutdown", zap.Error(err))
		}
	}

	log.Info("Bot stopped gracefully")
}

// runWarmupJob prepares today's words for every known user
func runWarmupJob(ctx context.Context, warmup *service.WarmupService, interval time.Duration, log *zap.Logger) {
	// Run warm-up once at startup
	if err := warmup.WarmUp(ctx); err != nil {
		log.Error("Failed to run initial warm-up", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Warm-up job stopped")
			return
		case <-ticker.C:
			log.Info("Running scheduled warm-up")
			if err := warmup.WarmUp(ctx); err != nil {
				log.Error("Failed to run scheduled warm-up", zap.Error(err))
			}
		}
	}
}
