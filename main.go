package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/temidaradev/ebiticker/internal/app"
	"github.com/temidaradev/ebiticker/internal/cache"
	"github.com/temidaradev/ebiticker/internal/clock"
	"github.com/temidaradev/ebiticker/internal/config"
	"github.com/temidaradev/ebiticker/internal/device"
	"github.com/temidaradev/ebiticker/internal/logger"
	"github.com/temidaradev/ebiticker/internal/menu"
	"github.com/temidaradev/ebiticker/internal/provider"
	"github.com/temidaradev/ebiticker/internal/retry"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	log, err := logger.New(logger.WithLevel(logger.Level(cfg.LogLevel)), logger.WithEncoding("console"))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	fetcher, err := provider.New(cfg.Provider.Name, provider.Options{
		BaseURL:   cfg.Provider.BaseURL,
		Timeout:   cfg.Provider.Timeout,
		UserAgent: cfg.Provider.UserAgent,
		MaxPoints: cfg.Cache.HistoryCapacity,
	})
	if err != nil {
		return err
	}

	clk := clock.System{}
	c, err := cache.New(cfg.Assets, fetcher, clk, cfg.CacheOptions(), log)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	nav, err := menu.New(c.Len(), cfg.Display.VisibleItems)
	if err != nil {
		return fmt.Errorf("init menu: %w", err)
	}
	a := app.New(c, nav, retry.Forever(cfg.Cache.RetryDelay), clk, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	game, err := device.NewGame(ctx, a, log)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}

	log.Info("ticker starting",
		logger.NewField("provider", fetcher.Name()),
		logger.NewField("assets", c.Len()),
		logger.NewField("rate_limit", cfg.Cache.RateLimit.String()),
	)
	if err := device.Run(game, "CryptoTicker", cfg.Display.Scale); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	log.Info("ticker stopped")
	return nil
}
