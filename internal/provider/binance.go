package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/temidaradev/ebiticker/internal/history"
)

const binanceURL = "https://api.binance.com"

// Binance reads spot prices from the public Binance REST API. Remote IDs are
// trading pairs such as "BTCUSDT".
type Binance struct {
	client    *http.Client
	apiURL    string
	userAgent string
	maxPoints int
}

func NewBinance(opts Options) *Binance {
	apiURL := opts.BaseURL
	if apiURL == "" {
		apiURL = binanceURL
	}
	return &Binance{
		client:    newHTTPClient(opts),
		apiURL:    strings.TrimRight(apiURL, "/"),
		userAgent: opts.UserAgent,
		maxPoints: opts.maxPoints(),
	}
}

func (b *Binance) Name() string { return "binance" }

type binanceTicker struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
}

func (b *Binance) FetchQuote(ctx context.Context, symbol string) (Quote, error) {
	u := fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%s", b.apiURL, url.QueryEscape(symbol))

	var ticker binanceTicker
	if err := getJSON(ctx, b.client, u, b.userAgent, symbol, &ticker); err != nil {
		return Quote{}, err
	}

	price, err := parsePrice(symbol, "price", ticker.LastPrice)
	if err != nil {
		return Quote{}, err
	}
	change, err := parsePrice(symbol, "change", ticker.PriceChangePercent)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Price: price, Change24h: change}, nil
}

// klineInterval picks a candle size that covers days in at most ~200 candles.
func klineInterval(days int) (interval string, limit int) {
	if days < 1 {
		days = 1
	}
	hours := days * 24
	switch {
	case days <= 1:
		return "15m", hours * 4
	case days <= 7:
		return "1h", hours
	case days <= 30:
		return "4h", hours / 4
	default:
		return "1d", min(days, 1000)
	}
}

func (b *Binance) FetchHistory(ctx context.Context, symbol string, days int) ([]history.Sample, error) {
	interval, limit := klineInterval(days)
	u := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		b.apiURL, url.QueryEscape(symbol), interval, limit)

	var klines [][]any
	if err := getJSON(ctx, b.client, u, b.userAgent, symbol, &klines); err != nil {
		return nil, err
	}

	samples := make([]history.Sample, 0, len(klines))
	for i, k := range klines {
		if len(k) < 5 {
			return nil, fmt.Errorf("%w: short kline %d [%s]", ErrFetch, i, symbol)
		}
		openTime, ok := k[0].(float64)
		if !ok {
			return nil, fmt.Errorf("%w: kline %d open time [%s]: %v", ErrFetch, i, symbol, k[0])
		}
		closeStr, ok := k[4].(string)
		if !ok {
			return nil, fmt.Errorf("%w: kline %d close [%s]: %v", ErrFetch, i, symbol, k[4])
		}
		price, err := parsePrice(symbol, "close", closeStr)
		if err != nil {
			return nil, err
		}
		samples = append(samples, history.Sample{
			Time:  time.UnixMilli(int64(openTime)),
			Price: price,
		})
	}
	return thin(samples, b.maxPoints), nil
}
