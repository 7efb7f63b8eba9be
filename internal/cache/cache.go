package cache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/temidaradev/ebiticker/internal/asset"
	"github.com/temidaradev/ebiticker/internal/clock"
	"github.com/temidaradev/ebiticker/internal/history"
	"github.com/temidaradev/ebiticker/internal/logger"
	"github.com/temidaradev/ebiticker/internal/provider"
	"github.com/temidaradev/ebiticker/internal/retry"
)

var (
	ErrUnknownAsset = errors.New("unknown asset index")
	ErrNoAssets     = errors.New("asset list is empty")
)

type entry struct {
	asset     asset.Asset
	price     float64
	change24h float64
	history   *history.Buffer
	updatedAt time.Time
	loaded    bool
}

// Snapshot is a copy of one cache entry.
type Snapshot struct {
	Asset     asset.Asset
	Price     float64
	Change24h float64
	Samples   []history.Sample
	UpdatedAt time.Time
	Loaded    bool
}

// Cache holds the latest quote and price history of every asset, index
// aligned with the asset list. Entries start unloaded and are only ever
// changed by a successful refresh. A Cache is not safe for concurrent use.
type Cache struct {
	entries []entry
	staging *history.Buffer
	fetcher provider.Fetcher
	clock   clock.Clock
	opts    Options
	log     logger.Interface
}

// New creates a cache with one unloaded entry per asset. A nil opts uses
// DefaultOptions.
func New(assets []asset.Asset, fetcher provider.Fetcher, clk clock.Clock, opts *Options, log logger.Interface) (*Cache, error) {
	if len(assets) == 0 {
		return nil, ErrNoAssets
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	staging, err := history.New(opts.HistoryCapacity)
	if err != nil {
		return nil, err
	}

	entries := make([]entry, len(assets))
	for i, a := range assets {
		buf, err := history.New(opts.HistoryCapacity)
		if err != nil {
			return nil, err
		}
		entries[i] = entry{
			asset:     a,
			price:     math.NaN(),
			change24h: math.NaN(),
			history:   buf,
		}
	}

	return &Cache{
		entries: entries,
		staging: staging,
		fetcher: fetcher,
		clock:   clk,
		opts:    *opts,
		log:     log,
	}, nil
}

func (c *Cache) Len() int { return len(c.entries) }

func (c *Cache) RateLimit() time.Duration { return c.opts.RateLimit }

func (c *Cache) get(i int) (*entry, error) {
	if i < 0 || i >= len(c.entries) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAsset, i)
	}
	return &c.entries[i], nil
}

// Asset returns the asset at index i.
func (c *Cache) Asset(i int) (asset.Asset, bool) {
	e, err := c.get(i)
	if err != nil {
		return asset.Asset{}, false
	}
	return e.asset, true
}

// Loaded reports whether entry i has been filled by a successful refresh.
func (c *Cache) Loaded(i int) bool {
	e, err := c.get(i)
	return err == nil && e.loaded
}

// Quote returns the cached price and 24h change of entry i. ok is false
// until the entry has loaded.
func (c *Cache) Quote(i int) (q provider.Quote, ok bool) {
	e, err := c.get(i)
	if err != nil || !e.loaded {
		return provider.Quote{}, false
	}
	return provider.Quote{Price: e.price, Change24h: e.change24h}, true
}

// History returns the buffer of entry i. The buffer belongs to the cache:
// read it, don't keep it across refreshes.
func (c *Cache) History(i int) (*history.Buffer, bool) {
	e, err := c.get(i)
	if err != nil {
		return nil, false
	}
	return e.history, true
}

// UpdatedAt returns when entry i last refreshed successfully.
func (c *Cache) UpdatedAt(i int) time.Time {
	e, err := c.get(i)
	if err != nil {
		return time.Time{}
	}
	return e.updatedAt
}

// Snapshot copies entry i.
func (c *Cache) Snapshot(i int) (Snapshot, error) {
	e, err := c.get(i)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Asset:     e.asset,
		Price:     e.price,
		Change24h: e.change24h,
		Samples:   e.history.Samples(),
		UpdatedAt: e.updatedAt,
		Loaded:    e.loaded,
	}, nil
}

// IsStale reports whether entry i should be fetched again: it never loaded,
// or at least RateLimit has passed since its last refresh. Unknown indexes
// are always stale.
func (c *Cache) IsStale(i int, now time.Time) bool {
	e, err := c.get(i)
	if err != nil || !e.loaded {
		return true
	}
	return now.Sub(e.updatedAt) >= c.opts.RateLimit
}

// Refresh fetches the quote and history of entry i and stores them. On any
// error the entry is left exactly as it was.
func (c *Cache) Refresh(ctx context.Context, i int) error {
	e, err := c.get(i)
	if err != nil {
		return err
	}
	symbol := e.asset.Symbol
	id := e.asset.RemoteID

	quote, err := c.fetcher.FetchQuote(ctx, id)
	if err != nil {
		return fmt.Errorf("refresh quote [%s]: %w", symbol, err)
	}
	if math.IsNaN(quote.Price) || math.IsInf(quote.Price, 0) ||
		math.IsNaN(quote.Change24h) || math.IsInf(quote.Change24h, 0) {
		return fmt.Errorf("refresh quote [%s]: %w: non-finite quote %+v", symbol, provider.ErrFetch, quote)
	}

	samples, err := c.fetcher.FetchHistory(ctx, id, c.opts.HistoryDays)
	if err != nil {
		return fmt.Errorf("refresh history [%s]: %w", symbol, err)
	}
	if err := c.staging.Load(samples); err != nil {
		return fmt.Errorf("refresh history [%s]: %w: %w", symbol, provider.ErrFetch, err)
	}

	e.history.CopyFrom(c.staging)
	e.price = quote.Price
	e.change24h = quote.Change24h
	e.updatedAt = c.clock.Now()
	e.loaded = true

	c.log.Debug("asset refreshed",
		logger.NewField("symbol", symbol),
		logger.NewField("price", quote.Price),
		logger.NewField("samples", e.history.Len()),
	)
	return nil
}

// RefreshIfStale refreshes entry i only when IsStale says so. refreshed is
// true when a fetch happened and succeeded.
func (c *Cache) RefreshIfStale(ctx context.Context, i int) (refreshed bool, err error) {
	if !c.IsStale(i, c.clock.Now()) {
		return false, nil
	}
	if err := c.Refresh(ctx, i); err != nil {
		return false, err
	}
	return true, nil
}

// RefreshUntilLoaded refreshes entry i regardless of staleness, retrying
// with policy until a fetch succeeds. With an unbounded policy it only
// returns an error when ctx is cancelled.
func (c *Cache) RefreshUntilLoaded(ctx context.Context, i int, policy retry.Policy) error {
	e, err := c.get(i)
	if err != nil {
		return err
	}
	log := c.log.With(logger.NewField("symbol", e.asset.Symbol))

	onRetry := policy.OnRetry
	policy.OnRetry = func(attempt int, err error) {
		log.Warn("refresh failed, retrying",
			logger.NewField("attempt", attempt),
			logger.NewField("delay", policy.Delay.String()),
			logger.NewField("error", err),
		)
		if onRetry != nil {
			onRetry(attempt, err)
		}
	}

	if err := policy.Do(ctx, func(ctx context.Context) error {
		return c.Refresh(ctx, i)
	}); err != nil {
		return err
	}
	log.Info("asset loaded", logger.NewField("price", e.price))
	return nil
}
