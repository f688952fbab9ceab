package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	app "github.com/storebot/backend/internal/application/storefront"
	"github.com/storebot/backend/internal/infrastructure/chat"
	"github.com/storebot/backend/internal/infrastructure/config"
	"github.com/storebot/backend/internal/infrastructure/ecommerce"
	"github.com/storebot/backend/internal/infrastructure/logger"
	"github.com/storebot/backend/internal/interfaces/http/handler"
	"github.com/storebot/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront bot",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Commerce backend
	platform, err := ecommerce.NewWooAdapter(&ecommerce.WooConfig{
		BaseURL:        cfg.WooCommerce.BaseURL,
		ConsumerKey:    cfg.WooCommerce.ConsumerKey,
		ConsumerSecret: cfg.WooCommerce.ConsumerSecret,
		Timeout:        cfg.WooCommerce.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to configure store backend", zap.Error(err))
	}

	// Chat transport
	transport, err := chat.NewTelegram(cfg.Telegram.Token, cfg.Telegram.PollTimeout, log)
	if err != nil {
		log.Fatal("Failed to connect to Telegram", zap.Error(err))
	}

	// Application services
	carts := app.NewCartService(log)
	engine := app.NewCheckoutEngine(carts, log)
	submitter := app.NewOrderSubmitter(platform, transport, carts, engine, cfg.Telegram.AdminChatID, log)
	dispatcher := app.NewDispatcher(platform, carts, engine, submitter, transport, cfg.Catalog.PageSize, log)

	// Operational HTTP server (health probes)
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	health := handler.NewHealthHandler(func(ctx context.Context) error {
		_, err := platform.ListProducts(ctx, 1)
		return err
	})
	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router.New(log, health),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Consume chat updates until interrupted
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down...")
		cancel()
	}()

	if err := transport.Run(ctx, dispatcher); err != nil {
		log.Error("Transport stopped with error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("Bot exited gracefully")
}
