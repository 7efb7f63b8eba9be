package history

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// FlatPad is the half-height used by ScaleRange when every sample has the
// same price.
const FlatPad = 0.1

// DefaultCapacity is the number of samples kept per asset.
const DefaultCapacity = 200

var (
	ErrEmpty           = errors.New("history is empty")
	ErrInvalidSample   = errors.New("invalid history sample")
	ErrInvalidCapacity = errors.New("history capacity must be positive")
)

// Sample is one point of a price series.
type Sample struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// Buffer is a fixed-capacity, oldest-first sequence of samples. The backing
// array is allocated once; entries at or beyond Len are unused.
type Buffer struct {
	samples []Sample
	count   int
}

// New allocates a buffer holding at most capacity samples.
func New(capacity int) (*Buffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Buffer{samples: make([]Sample, capacity)}, nil
}

func (b *Buffer) Len() int { return b.count }

func (b *Buffer) Cap() int { return len(b.samples) }

// Reset drops every sample without touching the backing array.
func (b *Buffer) Reset() { b.count = 0 }

// Load replaces the contents with the first min(len(samples), Cap()) samples.
// If any of those has a non-finite price, Load returns ErrInvalidSample and
// the previous contents stay as they were.
func (b *Buffer) Load(samples []Sample) error {
	n := min(len(samples), len(b.samples))
	for i := 0; i < n; i++ {
		p := samples[i].Price
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: index %d price %v", ErrInvalidSample, i, p)
		}
	}
	copy(b.samples, samples[:n])
	b.count = n
	return nil
}

// CopyFrom makes b hold the same samples as src, truncated to b's capacity.
func (b *Buffer) CopyFrom(src *Buffer) {
	n := min(src.count, len(b.samples))
	copy(b.samples, src.samples[:n])
	b.count = n
}

// At returns the i-th sample, oldest first.
func (b *Buffer) At(i int) (Sample, bool) {
	if i < 0 || i >= b.count {
		return Sample{}, false
	}
	return b.samples[i], true
}

// Last returns the newest sample.
func (b *Buffer) Last() (Sample, bool) {
	return b.At(b.count - 1)
}

// Samples returns a copy of the valid samples.
func (b *Buffer) Samples() []Sample {
	out := make([]Sample, b.count)
	copy(out, b.samples[:b.count])
	return out
}

// Prices returns a copy of the valid prices.
func (b *Buffer) Prices() []float64 {
	out := make([]float64, b.count)
	for i := range out {
		out[i] = b.samples[i].Price
	}
	return out
}

// MinMax returns the lowest and highest price held.
func (b *Buffer) MinMax() (lo, hi float64, err error) {
	if b.count == 0 {
		return 0, 0, ErrEmpty
	}
	lo, hi = b.samples[0].Price, b.samples[0].Price
	for _, s := range b.samples[1:b.count] {
		if s.Price < lo {
			lo = s.Price
		}
		if s.Price > hi {
			hi = s.Price
		}
	}
	return lo, hi, nil
}

// ScaleRange returns the vertical range a chart of this buffer should use:
// the min/max padded by 10% of their spread, or by FlatPad when the series
// is flat. A single sample yields a valid range but cannot be drawn as a
// line; callers drawing charts need Len() >= 2.
func (b *Buffer) ScaleRange() (yMin, yMax float64, err error) {
	lo, hi, err := b.MinMax()
	if err != nil {
		return 0, 0, err
	}
	pad := (hi - lo) * 0.1
	if hi == lo {
		pad = FlatPad
	}
	return lo - pad, hi + pad, nil
}
