package view

import (
	"fmt"
	"image/color"
	"time"

	"github.com/temidaradev/ebiticker/internal/cache"
	"github.com/temidaradev/ebiticker/internal/chart"
	"github.com/temidaradev/ebiticker/internal/menu"
)

// Logical size of the handheld's screen.
const (
	ScreenWidth  = 240
	ScreenHeight = 135
)

const (
	titleHeight = 20
	rowHeight   = 22
	marginX     = 8
	scrollbarW  = 3
)

// ChartRegion is where the detail screen draws the price chart.
var ChartRegion = chart.Region{X: 4, Y: 44, Width: ScreenWidth - 8, Height: ScreenHeight - 48}

type TextSize uint8

const (
	TextSmall TextSize = iota
	TextLarge
)

// Renderer is the drawing capability of the display. Coordinates are in
// screen pixels; text is positioned by its top-left corner.
type Renderer interface {
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h float64, c color.Color)
	Line(x0, y0, x1, y1 float64, c color.Color)
	Text(s string, x, y float64, size TextSize, c color.Color)
}

type Palette struct {
	Background color.Color
	Foreground color.Color
	Muted      color.Color
	Highlight  color.Color
	Outline    color.Color
	Up         color.Color
	Down       color.Color
}

var DefaultPalette = Palette{
	Background: color.RGBA{25, 25, 25, 255},
	Foreground: color.RGBA{255, 255, 255, 255},
	Muted:      color.RGBA{150, 150, 150, 255},
	Highlight:  color.RGBA{0, 90, 140, 255},
	Outline:    color.RGBA{80, 80, 80, 255},
	Up:         color.RGBA{0, 220, 0, 255},
	Down:       color.RGBA{230, 0, 0, 255},
}

// TrendColor resolves a chart trend to a color.
func (p Palette) TrendColor(t chart.Trend) color.Color {
	if t == chart.Down {
		return p.Down
	}
	return p.Up
}

func (p Palette) changeColor(change float64) color.Color {
	if change < 0 {
		return p.Down
	}
	return p.Up
}

// Screen draws the menu or the detail view, whichever the navigator is on.
type Screen struct {
	Palette Palette
	Title   string
}

func NewScreen() *Screen {
	return &Screen{Palette: DefaultPalette, Title: "CRYPTO"}
}

func (s *Screen) Draw(r Renderer, c *cache.Cache, nav *menu.Navigator, now time.Time) {
	r.FillRect(0, 0, ScreenWidth, ScreenHeight, s.Palette.Background)
	if nav.Mode() == menu.ModeDetail {
		s.drawDetail(r, c, nav.Index(), now)
		return
	}
	s.drawMenu(r, c, nav)
}

func (s *Screen) drawMenu(r Renderer, c *cache.Cache, nav *menu.Navigator) {
	p := s.Palette
	r.FillRect(0, 0, ScreenWidth, titleHeight, p.Outline)
	r.Text(s.Title, marginX, 3, TextSmall, p.Foreground)
	r.Text(fmt.Sprintf("%d/%d", nav.Index()+1, nav.Count()), ScreenWidth-40, 3, TextSmall, p.Muted)

	start, end := nav.Window()
	for i := start; i < end; i++ {
		y := float64(titleHeight + (i-start)*rowHeight)
		if i == nav.Index() {
			r.FillRect(0, y, ScreenWidth-scrollbarW-1, rowHeight, p.Highlight)
		}

		a, _ := c.Asset(i)
		r.Text(a.Symbol, marginX, y+4, TextSmall, p.Foreground)

		q, ok := c.Quote(i)
		if !ok {
			r.Text(placeholder, 70, y+4, TextSmall, p.Muted)
			continue
		}
		r.Text(FormatPrice(q.Price), 70, y+4, TextSmall, p.Foreground)
		r.Text(FormatChange(q.Change24h), 170, y+4, TextSmall, p.changeColor(q.Change24h))
	}

	s.drawScrollbar(r, nav, start, end)
}

func (s *Screen) drawScrollbar(r Renderer, nav *menu.Navigator, start, end int) {
	if end-start >= nav.Count() {
		return
	}
	trackY := float64(titleHeight)
	trackH := float64(ScreenHeight - titleHeight)
	x := float64(ScreenWidth - scrollbarW)
	r.FillRect(x, trackY, scrollbarW, trackH, s.Palette.Outline)

	thumbH := trackH * float64(end-start) / float64(nav.Count())
	thumbY := trackY + trackH*float64(start)/float64(nav.Count())
	r.FillRect(x, thumbY, scrollbarW, thumbH, s.Palette.Foreground)
}

func (s *Screen) drawDetail(r Renderer, c *cache.Cache, i int, now time.Time) {
	p := s.Palette
	a, _ := c.Asset(i)
	r.Text(a.Symbol, marginX, 4, TextLarge, p.Foreground)

	q, ok := c.Quote(i)
	if !ok {
		r.Text("Loading...", marginX, 60, TextLarge, p.Muted)
		return
	}

	r.Text(FormatPrice(q.Price), 90, 4, TextLarge, p.Foreground)
	r.Text(FormatChange(q.Change24h)+" 24h", marginX, 28, TextSmall, p.changeColor(q.Change24h))
	r.Text(FormatAge(c.UpdatedAt(i), now), 130, 28, TextSmall, p.Muted)

	region := ChartRegion
	r.StrokeRect(region.X, region.Y, region.Width, region.Height, p.Outline)

	h, _ := c.History(i)
	if h.Len() < 2 {
		r.Text("No chart data", region.X+70, region.Y+region.Height/2-8, TextSmall, p.Muted)
		return
	}
	for seg := range chart.Render(h, region) {
		r.Line(seg.X0, seg.Y0, seg.X1, seg.Y1, p.TrendColor(seg.Trend))
	}
}
