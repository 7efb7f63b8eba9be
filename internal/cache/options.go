package cache

import (
	"time"

	"github.com/temidaradev/ebiticker/internal/history"
)

// DefaultRateLimit is the minimum age of an entry before the automatic
// refresh path fetches it again.
const DefaultRateLimit = 60 * time.Second

// Options represents configuration options for the Cache.
type Options struct {
	HistoryCapacity int
	RateLimit       time.Duration
	HistoryDays     int
}

// DefaultOptions returns the default cache options.
func DefaultOptions() *Options {
	return &Options{
		HistoryCapacity: history.DefaultCapacity,
		RateLimit:       DefaultRateLimit,
		HistoryDays:     1,
	}
}
