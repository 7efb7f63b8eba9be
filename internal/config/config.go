package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/temidaradev/ebiticker/internal/asset"
	"github.com/temidaradev/ebiticker/internal/cache"
	"github.com/temidaradev/ebiticker/internal/history"
	"github.com/temidaradev/ebiticker/internal/menu"
)

// Config holds all application configuration.
type Config struct {
	Provider ProviderConfig `yaml:"provider" envPrefix:"PROVIDER_"`
	Cache    CacheConfig    `yaml:"cache" envPrefix:"CACHE_"`
	Display  DisplayConfig  `yaml:"display" envPrefix:"DISPLAY_"`
	LogLevel string         `yaml:"log_level" env:"LOG_LEVEL"`
	Assets   []asset.Asset  `yaml:"assets"`
}

type ProviderConfig struct {
	Name      string        `yaml:"name" env:"NAME"`
	BaseURL   string        `yaml:"base_url" env:"BASE_URL"`
	Timeout   time.Duration `yaml:"timeout" env:"TIMEOUT"`
	UserAgent string        `yaml:"user_agent" env:"USER_AGENT"`
}

type CacheConfig struct {
	HistoryCapacity int           `yaml:"history_capacity" env:"HISTORY_CAPACITY"`
	HistoryDays     int           `yaml:"history_days" env:"HISTORY_DAYS"`
	RateLimit       time.Duration `yaml:"rate_limit" env:"RATE_LIMIT"`
	RetryDelay      time.Duration `yaml:"retry_delay" env:"RETRY_DELAY"`
}

type DisplayConfig struct {
	VisibleItems int     `yaml:"visible_items" env:"VISIBLE_ITEMS"`
	Scale        float64 `yaml:"scale" env:"SCALE"`
}

const envPrefix = "TICKER_"

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Name:      asset.ProviderCoinGecko,
			Timeout:   10 * time.Second,
			UserAgent: "ebiticker/1.0",
		},
		Cache: CacheConfig{
			HistoryCapacity: history.DefaultCapacity,
			HistoryDays:     1,
			RateLimit:       cache.DefaultRateLimit,
			RetryDelay:      5 * time.Second,
		},
		Display: DisplayConfig{
			VisibleItems: menu.DefaultVisibleItems,
			Scale:        4,
		},
		LogLevel: "info",
	}
}

// Load starts from Default, applies the YAML file at path if it exists,
// then .env and TICKER_* environment variables. Assets fall back to the
// provider's compiled-in list.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(cfg.Assets) == 0 {
		cfg.Assets = asset.Defaults(cfg.Provider.Name)
	}
	return cfg, nil
}

// Validate checks that the configuration can drive the ticker.
func (c *Config) Validate() error {
	switch c.Provider.Name {
	case asset.ProviderBinance, asset.ProviderCoinGecko:
	default:
		return fmt.Errorf("provider.name %q is not supported", c.Provider.Name)
	}
	if len(c.Assets) == 0 {
		return errors.New("assets must not be empty")
	}
	for i, a := range c.Assets {
		if a.Symbol == "" || a.RemoteID == "" {
			return fmt.Errorf("assets[%d] needs both symbol and id", i)
		}
	}
	if c.Cache.HistoryCapacity < 2 {
		return errors.New("cache.history_capacity must be at least 2")
	}
	if c.Cache.HistoryDays < 1 {
		return errors.New("cache.history_days must be positive")
	}
	if c.Cache.RateLimit <= 0 {
		return errors.New("cache.rate_limit must be positive")
	}
	if c.Cache.RetryDelay < 0 {
		return errors.New("cache.retry_delay must not be negative")
	}
	if c.Display.VisibleItems < 1 {
		return errors.New("display.visible_items must be positive")
	}
	if c.Display.Scale <= 0 {
		return errors.New("display.scale must be positive")
	}
	return nil
}

// CacheOptions converts the cache section for cache.New.
func (c *Config) CacheOptions() *cache.Options {
	return &cache.Options{
		HistoryCapacity: c.Cache.HistoryCapacity,
		RateLimit:       c.Cache.RateLimit,
		HistoryDays:     c.Cache.HistoryDays,
	}
}
