package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshitk-cp/gridmind/internal/api"
	"github.com/Harshitk-cp/gridmind/internal/buildconfig"
	"github.com/Harshitk-cp/gridmind/internal/config"
	"github.com/Harshitk-cp/gridmind/internal/perception"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := config.Load(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	level, err := zap.ParseAtomicLevel(config.LogLevel())
	if err != nil {
		logger.Fatal("invalid LOG_LEVEL", zap.String("level", config.LogLevel()), zap.Error(err))
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	if l, err := zcfg.Build(); err == nil {
		_ = logger.Sync()
		logger = l
	}

	app := api.NewApp(api.Options{
		APIKey:         config.APIKey(),
		GridWidth:      config.GridWidth(),
		GridHeight:     config.GridHeight(),
		MaxGridCells:   config.GridMaxCells(),
		RateLimitRPS:   config.RateLimitRPS(),
		RateLimitBurst: config.RateLimitBurst(),
		Geometry:       perception.DefaultGeometry,
	}, logger)
	defer app.Close()

	if config.APIKey() == "" {
		logger.Warn("API_KEY is empty, /v1 routes are unauthenticated")
	}

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting",
			zap.String("addr", addr),
			zap.String("version", buildconfig.Version()),
			zap.Int("default_width", config.GridWidth()),
			zap.Int("default_height", config.GridHeight()),
			zap.Int("max_cells", config.GridMaxCells()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
