package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gamehorizon/gamehorizon/internal/api"
	"github.com/gamehorizon/gamehorizon/internal/config"
	"github.com/gamehorizon/gamehorizon/internal/factory"
	redisstorage "github.com/gamehorizon/gamehorizon/internal/storage/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.Storage.Type,
		StoragePath: cfg.Storage.Path,
	}

	// Configure Redis if storage type is redis
	if cfg.Storage.Type == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Redis.URL
		if cfg.Redis.KeyPrefix != "" {
			redisCfg.KeyPrefix = cfg.Redis.KeyPrefix
		}
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Storage.Seed {
		n, err := app.CollectionService.Seed(ctx)
		if err != nil {
			logger.Error("failed to seed collection", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("collection seeded", slog.Int("games", n))
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		CollectionService: app.CollectionService,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Store.Host
	serverConfig.Port = cfg.Store.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	logger.Info("record store started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.Storage.Type))

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("record store stopped")
}
