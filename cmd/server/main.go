package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/savecircle/internal"
	"github.com/yourname/savecircle/internal/api"
	"github.com/yourname/savecircle/internal/auth"
	"github.com/yourname/savecircle/internal/config"
	"github.com/yourname/savecircle/internal/ledger"
	"github.com/yourname/savecircle/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Errorf("failed to close storage: %v", err)
		}
	}()

	var provider auth.Provider
	if cfg.DeviceToken != "" {
		provider = auth.NewDeviceTokenProvider(cfg.DeviceToken, logger)
	} else {
		logger.Warnf("DEVICE_TOKEN not set, API is unauthenticated")
	}

	app := api.NewApp(logger, ledger.New(kv, logger))
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(app, provider),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Infof("Server running on %s (storage=%s)", cfg.HTTPAddr, cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("failed to start server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Infof("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
}
