package app

import (
	"context"
	"errors"

	"github.com/temidaradev/ebiticker/internal/cache"
	"github.com/temidaradev/ebiticker/internal/clock"
	"github.com/temidaradev/ebiticker/internal/logger"
	"github.com/temidaradev/ebiticker/internal/menu"
	"github.com/temidaradev/ebiticker/internal/retry"
	"github.com/temidaradev/ebiticker/internal/view"
)

// Event is a debounced button press.
type Event uint8

const (
	SelectPressed Event = iota + 1
	NextPressed
)

func (e Event) String() string {
	switch e {
	case SelectPressed:
		return "select"
	case NextPressed:
		return "next"
	default:
		return "unknown"
	}
}

// App is the whole mutable state of the ticker: the cache, the navigator and
// a pending load. It is driven from a single loop: Handle for each button
// press, then Tick once per iteration.
type App struct {
	cache  *cache.Cache
	nav    *menu.Navigator
	screen *view.Screen
	retry  retry.Policy
	clock  clock.Clock
	log    logger.Interface

	// loadPending is set when the detail view was opened and the blocking
	// load has not run yet. loadDrawn turns true once a frame has been drawn
	// since then; the load waits for it so "Loading..." is on screen.
	loadPending bool
	loadDrawn   bool
}

func New(c *cache.Cache, nav *menu.Navigator, policy retry.Policy, clk clock.Clock, log logger.Interface) *App {
	return &App{
		cache:  c,
		nav:    nav,
		screen: view.NewScreen(),
		retry:  policy,
		clock:  clk,
		log:    log,
	}
}

func (a *App) Cache() *cache.Cache        { return a.cache }
func (a *App) Navigator() *menu.Navigator { return a.nav }
func (a *App) LoadPending() bool          { return a.loadPending }

// Handle applies one button press.
func (a *App) Handle(ev Event) {
	switch a.nav.Mode() {
	case menu.ModeMenu:
		switch ev {
		case NextPressed:
			a.nav.Next()
		case SelectPressed:
			i := a.nav.Select()
			a.loadPending = true
			a.loadDrawn = false
			if sym, ok := a.cache.Asset(i); ok {
				a.log.Info("asset selected", logger.NewField("symbol", sym.Symbol))
			}
		}
	case menu.ModeDetail:
		if ev == SelectPressed {
			a.nav.Back()
			a.loadPending = false
			a.loadDrawn = false
		}
	}
}

// Tick runs the refresh work for this loop iteration. After a selection,
// and once the loading frame has been drawn, it blocks until the selected
// asset loads; on the detail screen afterwards it refreshes only once the
// entry has gone stale, and a failure just waits for a later tick. The
// returned error is non-nil only when ctx ends during a blocking load.
func (a *App) Tick(ctx context.Context) error {
	if a.nav.Mode() != menu.ModeDetail {
		return nil
	}
	i := a.nav.Index()

	if a.loadPending {
		if !a.loadDrawn {
			return nil
		}
		a.loadPending = false
		return a.load(ctx, i)
	}

	refreshed, err := a.cache.RefreshIfStale(ctx, i)
	if err != nil {
		a.log.Warn("auto refresh failed", logger.NewField("index", i), logger.NewField("error", err))
		return nil
	}
	if refreshed {
		a.log.Debug("auto refresh", logger.NewField("index", i))
	}
	return nil
}

// load runs the blocking refresh for the selected asset. A policy that gives
// up sends the user back to the menu instead of stopping the loop.
func (a *App) load(ctx context.Context, i int) error {
	err := a.cache.RefreshUntilLoaded(ctx, i, a.retry)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	a.log.Error(err, logger.NewField("index", i))
	a.nav.Back()
	return nil
}

// Draw renders the current screen.
func (a *App) Draw(r view.Renderer) {
	a.screen.Draw(r, a.cache, a.nav, a.clock.Now())
	if a.loadPending {
		a.loadDrawn = true
	}
}
