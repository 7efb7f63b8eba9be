package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/temidaradev/ebiticker/internal/history"
)

func newHTTPClient(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// getJSON performs a GET and decodes a 200 response into out. Every failure
// is wrapped with ErrFetch and tagged with id.
func getJSON(ctx context.Context, client *http.Client, url, userAgent, id string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request [%s]: %w", ErrFetch, id, err)
	}
	req.Header.Set("Accept", "application/json")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: HTTP request failed [%s]: %w", ErrFetch, id, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: body read error [%s]: %w", ErrFetch, id, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: API error [%s]: %s - %s", ErrFetch, id, resp.Status, truncate(body, 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: JSON parse error [%s]: %w, Received Data: %s", ErrFetch, id, err, truncate(body, 200))
	}
	return nil
}

// parsePrice parses a decimal string as sent by exchanges that quote prices
// as strings.
func parsePrice(id, field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s format [%s]: %w, Received: %q", ErrFetch, field, id, err, raw)
	}
	return checkFinite(id, field, v)
}

func checkFinite(id, field string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: non-finite %s [%s]: %v", ErrFetch, field, id, v)
	}
	return v, nil
}

// thin picks at most n evenly spaced samples, always keeping the first and
// the newest.
func thin(samples []history.Sample, n int) []history.Sample {
	if n <= 0 || len(samples) <= n {
		return samples
	}
	if n == 1 {
		return samples[len(samples)-1:]
	}
	last := len(samples) - 1
	out := make([]history.Sample, n)
	for k := range out {
		out[k] = samples[k*last/(n-1)]
	}
	return out
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
