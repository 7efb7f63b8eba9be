package view

import (
	"context"
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temidaradev/ebiticker/internal/asset"
	"github.com/temidaradev/ebiticker/internal/cache"
	"github.com/temidaradev/ebiticker/internal/clock"
	"github.com/temidaradev/ebiticker/internal/history"
	"github.com/temidaradev/ebiticker/internal/logger"
	"github.com/temidaradev/ebiticker/internal/menu"
	"github.com/temidaradev/ebiticker/internal/provider"
)

type textCall struct {
	s    string
	size TextSize
	c    color.Color
}

type lineCall struct {
	x0, y0, x1, y1 float64
	c              color.Color
}

type recorder struct {
	texts   []textCall
	lines   []lineCall
	fills   int
	strokes int
}

func (r *recorder) FillRect(_, _, _, _ float64, _ color.Color)   { r.fills++ }
func (r *recorder) StrokeRect(_, _, _, _ float64, _ color.Color) { r.strokes++ }
func (r *recorder) Line(x0, y0, x1, y1 float64, c color.Color) {
	r.lines = append(r.lines, lineCall{x0, y0, x1, y1, c})
}
func (r *recorder) Text(s string, _, _ float64, size TextSize, c color.Color) {
	r.texts = append(r.texts, textCall{s, size, c})
}

func (r *recorder) strings() []string {
	out := make([]string, len(r.texts))
	for i, t := range r.texts {
		out[i] = t.s
	}
	return out
}

type stubFetcher struct {
	quotes  map[string]provider.Quote
	history map[string][]float64
}

func (f *stubFetcher) Name() string { return "stub" }

func (f *stubFetcher) FetchQuote(_ context.Context, id string) (provider.Quote, error) {
	q, ok := f.quotes[id]
	if !ok {
		return provider.Quote{}, provider.ErrFetch
	}
	return q, nil
}

func (f *stubFetcher) FetchHistory(_ context.Context, id string, _ int) ([]history.Sample, error) {
	prices := f.history[id]
	out := make([]history.Sample, len(prices))
	for i, p := range prices {
		out[i] = history.Sample{Time: time.Unix(int64(i), 0), Price: p}
	}
	return out, nil
}

var now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) (*cache.Cache, *menu.Navigator) {
	t.Helper()
	fetcher := &stubFetcher{
		quotes: map[string]provider.Quote{
			"bitcoin":  {Price: 67123.456, Change24h: 2.345},
			"ethereum": {Price: 3000, Change24h: -1.5},
			"solana":   {Price: 150, Change24h: 0},
		},
		history: map[string][]float64{
			"bitcoin":  {1, 3, 2, 2},
			"ethereum": {3000},
		},
	}
	c, err := cache.New(asset.Defaults(asset.ProviderCoinGecko), fetcher, clock.NewManual(now), nil, logger.Nop())
	require.NoError(t, err)
	nav, err := menu.New(c.Len(), menu.DefaultVisibleItems)
	require.NoError(t, err)
	return c, nav
}

func TestScreen_MenuBeforeLoad(t *testing.T) {
	c, nav := newFixture(t)
	rec := &recorder{}
	NewScreen().Draw(rec, c, nav, now)

	texts := rec.strings()
	assert.Contains(t, texts, "CRYPTO")
	assert.Contains(t, texts, "1/8")
	for _, sym := range []string{"BTC", "ETH", "SOL", "XRP", "ADA"} {
		assert.Contains(t, texts, sym)
	}
	assert.NotContains(t, texts, "DOGE", "outside the window")
	for _, s := range texts {
		assert.NotContains(t, s, "NaN")
		assert.NotContains(t, s, "$")
	}
	assert.Empty(t, rec.lines)
}

func TestScreen_MenuAfterLoad(t *testing.T) {
	c, nav := newFixture(t)
	require.NoError(t, c.Refresh(context.Background(), 0))
	require.NoError(t, c.Refresh(context.Background(), 1))

	rec := &recorder{}
	NewScreen().Draw(rec, c, nav, now)

	texts := rec.strings()
	assert.Contains(t, texts, "$67,123.46")
	assert.Contains(t, texts, "+2.35%")
	assert.Contains(t, texts, "$3,000.00")
	assert.Contains(t, texts, "-1.50%")

	for _, tc := range rec.texts {
		if tc.s == "-1.50%" {
			assert.Equal(t, DefaultPalette.Down, tc.c)
		}
	}
}

func TestScreen_MenuScrolled(t *testing.T) {
	c, nav := newFixture(t)
	for i := 0; i < 6; i++ {
		nav.Next()
	}
	rec := &recorder{}
	NewScreen().Draw(rec, c, nav, now)

	texts := rec.strings()
	assert.Contains(t, texts, "7/8")
	assert.Contains(t, texts, "DOT")
	assert.NotContains(t, texts, "BTC")
}

func TestScreen_DetailLoading(t *testing.T) {
	c, nav := newFixture(t)
	nav.Select()

	rec := &recorder{}
	NewScreen().Draw(rec, c, nav, now)

	assert.Contains(t, rec.strings(), "BTC")
	assert.Contains(t, rec.strings(), "Loading...")
	assert.Empty(t, rec.lines)
	assert.Zero(t, rec.strokes)
}

func TestScreen_DetailChart(t *testing.T) {
	c, nav := newFixture(t)
	require.NoError(t, c.Refresh(context.Background(), 0))
	nav.Select()

	rec := &recorder{}
	NewScreen().Draw(rec, c, nav, now.Add(2*time.Minute))

	texts := rec.strings()
	assert.Contains(t, texts, "$67,123.46")
	assert.Contains(t, texts, "+2.35% 24h")
	assert.Contains(t, texts, "2 minutes ago")
	assert.Equal(t, 1, rec.strokes)

	require.Len(t, rec.lines, 3)
	assert.Equal(t, DefaultPalette.Up, rec.lines[0].c)
	assert.Equal(t, DefaultPalette.Down, rec.lines[1].c)
	assert.Equal(t, DefaultPalette.Up, rec.lines[2].c, "flat segment counts as up")

	for _, l := range rec.lines {
		assert.GreaterOrEqual(t, math.Min(l.y0, l.y1), ChartRegion.Y)
		assert.LessOrEqual(t, math.Max(l.y0, l.y1), ChartRegion.Y+ChartRegion.Height)
	}
}

func TestScreen_DetailSinglePoint(t *testing.T) {
	c, nav := newFixture(t)
	require.NoError(t, c.Refresh(context.Background(), 1))
	nav.Next()
	nav.Select()

	rec := &recorder{}
	NewScreen().Draw(rec, c, nav, now)

	assert.Contains(t, rec.strings(), "No chart data")
	assert.Empty(t, rec.lines)
}

func TestFormatPrice(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{67123.456, "$67,123.46"},
		{1, "$1.00"},
		{0.5123456, "$0.5123"},
		{0.00001234, "$0.000012"},
		{math.NaN(), "--"},
		{math.Inf(1), "--"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatPrice(tc.in), "in=%v", tc.in)
	}
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+2.35%", FormatChange(2.345))
	assert.Equal(t, "-0.10%", FormatChange(-0.1))
	assert.Equal(t, "+0.00%", FormatChange(0))
	assert.Equal(t, "--", FormatChange(math.NaN()))
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "", FormatAge(time.Time{}, now))
	assert.True(t, strings.HasSuffix(FormatAge(now.Add(-90*time.Second), now), "ago"))
}
