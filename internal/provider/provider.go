package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/temidaradev/ebiticker/internal/asset"
	"github.com/temidaradev/ebiticker/internal/history"
)

// ErrFetch marks every failure coming out of a Fetcher: transport errors,
// non-200 responses and payloads that don't parse.
var ErrFetch = errors.New("fetch failed")

// Quote is the latest price of an asset and its 24h percent change.
type Quote struct {
	Price     float64
	Change24h float64
}

// Fetcher is the network boundary the cache pulls prices through.
//
//go:generate mockgen -source provider.go -destination=mock/provider_mock.go -package=provider_mock
type Fetcher interface {
	FetchQuote(ctx context.Context, remoteID string) (Quote, error)
	FetchHistory(ctx context.Context, remoteID string, days int) ([]history.Sample, error)
	Name() string
}

// Options are shared by the HTTP providers.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// MaxPoints caps the length of a fetched history. Zero means
	// history.DefaultCapacity.
	MaxPoints int
}

func (o Options) maxPoints() int {
	if o.MaxPoints > 0 {
		return o.MaxPoints
	}
	return history.DefaultCapacity
}

const defaultTimeout = 10 * time.Second

// New returns the provider registered under name.
func New(name string, opts Options) (Fetcher, error) {
	switch name {
	case asset.ProviderBinance:
		return NewBinance(opts), nil
	case asset.ProviderCoinGecko:
		return NewCoinGecko(opts), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
