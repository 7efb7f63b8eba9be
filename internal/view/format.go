package view

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const placeholder = "--"

// FormatPrice renders a price with thousands separators. Cheaper coins get
// more decimals so they don't collapse to 0.00.
func FormatPrice(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return placeholder
	}
	abs := math.Abs(p)
	switch {
	case abs >= 1:
		return "$" + humanize.FormatFloat("#,###.##", p)
	case abs >= 0.01:
		return "$" + humanize.FormatFloat("#,###.####", p)
	default:
		return "$" + humanize.FormatFloat("#,###.######", p)
	}
}

// FormatChange renders a percent change with an explicit sign, e.g. "+1.23%".
func FormatChange(c float64) string {
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return placeholder
	}
	d := decimal.NewFromFloat(c).Round(2)
	sign := ""
	if d.Sign() >= 0 {
		sign = "+"
	}
	return sign + d.StringFixed(2) + "%"
}

// FormatAge renders how long ago t was, relative to now.
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
