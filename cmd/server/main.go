package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // display clock zone on hosts without zoneinfo

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/skbsalatiga/signage-backend/internal/cache"
	"github.com/skbsalatiga/signage-backend/internal/config"
	"github.com/skbsalatiga/signage-backend/internal/database"
	"github.com/skbsalatiga/signage-backend/internal/handlers"
	"github.com/skbsalatiga/signage-backend/internal/services"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting SKB Salatiga signage backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Server.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	seed, err := config.LoadSeed(cfg.Seed)
	if err != nil {
		logger.Fatalf("Failed to load seed content: %v", err)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// Initialize store (in-memory when DATABASE_URL is empty)
	store, err := database.NewStore(startupCtx, cfg.Database, seed, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()
	logger.Infof("Store ready (%s)", store.Kind())

	// Initialize snapshot cache
	kv, err := cache.NewKVStore(startupCtx, cfg.Redis)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	if cfg.Redis.Addr == "" {
		logger.Info("REDIS_ADDR not set, caching display snapshots in memory")
	} else {
		logger.Infof("Caching display snapshots in Redis at %s", cfg.Redis.Addr)
	}

	// Initialize services
	displayService := services.NewDisplayService(store, kv, cfg.Redis.SnapshotTTL, cfg.Display.TickerSeparator, logger)
	exportService := services.NewExportService(store)
	feedService := services.NewFeedService(store, cfg.Display.SiteTitle)

	// Start cron jobs
	cronService := services.NewCronService(store, cfg.Cron, logger)
	if cfg.Cron.Enabled {
		if err := cronService.Start(); err != nil {
			logger.Fatalf("Failed to start cron service: %v", err)
		}
		logger.Infof("Cron service started (%d jobs)", cronService.Entries())
	}

	router, err := handlers.NewRouter(cfg, handlers.Dependencies{
		Store:   store,
		Display: displayService,
		Export:  exportService,
		Feed:    feedService,
		Logger:  logger,
		Version: version,
	})
	if err != nil {
		logger.Fatalf("Failed to build router: %v", err)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if cfg.Cron.Enabled {
		logger.Info("Stopping cron service...")
		cronService.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	if closer, ok := kv.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Warnf("Failed to close Redis client: %v", err)
		}
	}

	logger.Info("Server exited successfully")
}
