package main

import (
	"context"
	"flag"
	"mapgen-server/internal/engine"
	"mapgen-server/internal/infrastructure/storage"
	"mapgen-server/internal/server"
	"mapgen-server/internal/version"
	"mapgen-server/pkg/logger"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func init() {
	logger.Init()
}

func main() {
	cfg := engine.NewConfig()
	cfg.ApplyEnv()

	// 1. Флаги поверх окружения
	var seed int64
	flag.Int64Var(&seed, "seed", 0, "Master seed for requests without seed (0 for random)")
	flag.StringVar(&cfg.Port, "port", cfg.Port, "HTTP port")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Directory for .bspm map files")
	flag.StringVar(&cfg.DatabaseURL, "db", cfg.DatabaseURL, "PostgreSQL DSN (overrides -data)")
	flag.IntVar(&cfg.CacheSize, "cache", cfg.CacheSize, "How many recent maps to keep in memory")
	flag.Parse()

	logger.Log.Info("Starting BSP map server...")
	logger.Log.Info(version.String())

	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("Using explicit master seed: %d", seed)
	} else {
		logger.Log.Infof("Using random master seed: %d", cfg.Seed)
	}

	// 2. Хранилище
	store, err := openStore(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to open storage")
	}

	maps := engine.NewService(cfg, store)
	srv := server.New(maps, cfg.Port)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Warn("HTTP shutdown failed")
	}
	if err := maps.Close(); err != nil {
		logger.Log.WithError(err).Warn("Failed to close storage")
	}

	logger.Log.Info("Done.")
}

func openStore(cfg engine.Config) (storage.Store, error) {
	if cfg.DatabaseURL != "" {
		logger.Log.Info("Storage: PostgreSQL")
		return storage.NewPostgresStore(cfg.DatabaseURL)
	}
	logger.Log.WithField("dir", cfg.DataDir).Info("Storage: files")
	return storage.NewFileStore(cfg.DataDir)
}
