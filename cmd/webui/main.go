package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gamehorizon/gamehorizon/internal/api"
	"github.com/gamehorizon/gamehorizon/internal/client"
	"github.com/gamehorizon/gamehorizon/internal/config"
	"github.com/gamehorizon/gamehorizon/internal/dependencies/clock"
	"github.com/gamehorizon/gamehorizon/internal/ui"
	"github.com/gamehorizon/gamehorizon/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	clk := clock.New()
	store := client.New(cfg.UI.StoreURL, client.WithClock(clk))
	controller := ui.NewController(store, clk, logger)

	router := web.NewRouter(web.RouterConfig{
		Logger:     logger,
		Controller: controller,
		StaticDir:  findStaticDir(cfg.UI.StaticDir),
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.UI.Host
	serverConfig.Port = cfg.UI.Port
	server := api.NewServer(router, serverConfig, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	logger.Info("web UI started",
		slog.String("addr", server.Addr()),
		slog.String("store", store.BaseURL()))

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("web UI stopped")
}

// findStaticDir looks for the static files directory
func findStaticDir(configured string) string {
	candidates := []string{
		configured,
		"./static",
		filepath.Join(os.Getenv("PWD"), "static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	// No static files; the page still works without styles
	return ""
}
