package chart

import (
	"iter"

	"github.com/temidaradev/ebiticker/internal/history"
)

// Trend tells whether a segment goes up or down. It is turned into a color
// by whoever draws the segment.
type Trend uint8

const (
	Up Trend = iota
	Down
)

func (t Trend) String() string {
	if t == Down {
		return "down"
	}
	return "up"
}

// Region is the pixel rectangle a chart is drawn into. Y grows downwards.
type Region struct {
	X, Y, Width, Height float64
}

// Segment is a line between two consecutive samples, in pixels.
type Segment struct {
	X0, Y0 float64
	X1, Y1 float64
	Trend  Trend
}

// Render lays out h inside r, one segment per adjacent pair of samples,
// oldest first. Fewer than two samples, or a region without area, yields
// nothing.
func Render(h *history.Buffer, r Region) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		n := h.Len()
		if n < 2 || r.Width <= 0 || r.Height <= 0 {
			return
		}
		yMin, yMax, err := h.ScaleRange()
		if err != nil {
			return
		}

		xStep := r.Width / float64(n-1)
		yScale := r.Height / (yMax - yMin)
		point := func(i int, price float64) (float64, float64) {
			return r.X + float64(i)*xStep, r.Y + r.Height - (price-yMin)*yScale
		}

		prev, _ := h.At(0)
		x0, y0 := point(0, prev.Price)
		for i := 1; i < n; i++ {
			cur, _ := h.At(i)
			x1, y1 := point(i, cur.Price)

			trend := Up
			if cur.Price < prev.Price {
				trend = Down
			}
			if !yield(Segment{X0: x0, Y0: y0, X1: x1, Y1: y1, Trend: trend}) {
				return
			}
			prev, x0, y0 = cur, x1, y1
		}
	}
}

// Collect drains Render into a slice.
func Collect(h *history.Buffer, r Region) []Segment {
	var out []Segment
	for s := range Render(h, r) {
		out = append(out, s)
	}
	return out
}
