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

const coinGeckoURL = "https://api.coingecko.com"

// CoinGecko reads USD prices from the public CoinGecko API. Remote IDs are
// coin ids such as "bitcoin".
type CoinGecko struct {
	client     *http.Client
	apiURL     string
	userAgent  string
	vsCurrency string
	maxPoints  int
}

func NewCoinGecko(opts Options) *CoinGecko {
	apiURL := opts.BaseURL
	if apiURL == "" {
		apiURL = coinGeckoURL
	}
	return &CoinGecko{
		client:     newHTTPClient(opts),
		apiURL:     strings.TrimRight(apiURL, "/"),
		userAgent:  opts.UserAgent,
		vsCurrency: "usd",
		maxPoints:  opts.maxPoints(),
	}
}

func (c *CoinGecko) Name() string { return "coingecko" }

func (c *CoinGecko) FetchQuote(ctx context.Context, id string) (Quote, error) {
	u := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=%s&include_24hr_change=true",
		c.apiURL, url.QueryEscape(id), c.vsCurrency)

	var resp map[string]map[string]*float64
	if err := getJSON(ctx, c.client, u, c.userAgent, id, &resp); err != nil {
		return Quote{}, err
	}

	coin, ok := resp[id]
	if !ok {
		return Quote{}, fmt.Errorf("%w: no quote for [%s]", ErrFetch, id)
	}
	price := coin[c.vsCurrency]
	change := coin[c.vsCurrency+"_24h_change"]
	if price == nil || change == nil {
		return Quote{}, fmt.Errorf("%w: incomplete quote [%s]", ErrFetch, id)
	}
	return Quote{Price: *price, Change24h: *change}, nil
}

type marketChart struct {
	Prices [][]float64 `json:"prices"`
}

func (c *CoinGecko) FetchHistory(ctx context.Context, id string, days int) ([]history.Sample, error) {
	if days < 1 {
		days = 1
	}
	u := fmt.Sprintf("%s/api/v3/coins/%s/market_chart?vs_currency=%s&days=%d",
		c.apiURL, url.PathEscape(id), c.vsCurrency, days)

	var chart marketChart
	if err := getJSON(ctx, c.client, u, c.userAgent, id, &chart); err != nil {
		return nil, err
	}

	samples := make([]history.Sample, 0, len(chart.Prices))
	for i, p := range chart.Prices {
		if len(p) < 2 {
			return nil, fmt.Errorf("%w: short price point %d [%s]", ErrFetch, i, id)
		}
		samples = append(samples, history.Sample{
			Time:  time.UnixMilli(int64(p[0])),
			Price: p[1],
		})
	}
	// days=1 comes back at five minute granularity, more than fits.
	return thin(samples, c.maxPoints), nil
}
