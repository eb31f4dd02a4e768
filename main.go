package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jemsbhai/explainiverse-studio/config"
	studiohttp "github.com/jemsbhai/explainiverse-studio/http"
	"github.com/jemsbhai/explainiverse-studio/logging"
	"github.com/jemsbhai/explainiverse-studio/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to yaml config file")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Logger with runtime-adjustable level
	logger, level := logging.New(cfg.Log)
	defer logger.Sync()

	stopWatch, err := config.Watch(*configPath, func(next *config.Config) {
		level.SetLevel(logging.ParseLevel(next.Log.Level))
		logger.Info("config reloaded", zap.String("log_level", next.Log.Level))
	})
	if err != nil {
		logger.Warn("config watch unavailable", zap.Error(err))
	} else {
		defer stopWatch()
	}

	// 3. Run history database
	history, err := store.OpenHistory(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to open run history", zap.Error(err))
	}
	defer history.Close()
	logger.Info("run history opened", zap.String("path", cfg.Database.Path))

	// 4. Stores, cache and progress hub
	cache, err := store.NewScoreCache(cfg.Cache.Size)
	if err != nil {
		logger.Fatal("failed to build score cache", zap.Error(err))
	}

	hub := studiohttp.NewRunHub(logger)
	go hub.Run()

	api := studiohttp.NewAPI(store.New(), logger)
	api.History = history
	api.Cache = cache
	api.Hub = hub

	// 5. HTTP server
	server := studiohttp.NewServer(studiohttp.ServerConfig{
		Port:           cfg.HTTP.Port,
		Timeout:        time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		MaxUploadBytes: cfg.HTTP.MaxUploadMB << 20,
	}, api, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}
