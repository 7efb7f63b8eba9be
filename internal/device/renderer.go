package device

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/temidaradev/esset/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/temidaradev/ebiticker/internal/view"
)

const glyphsToPreload = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789.,:/$%+-() "

const (
	smallFontSize = 10
	largeFontSize = 16
	lineWidth     = 1
)

// renderer draws view calls onto the ebiten screen image of the current frame.
type renderer struct {
	target *ebiten.Image
	small  text.Face
	large  text.Face
}

func newRenderer() (*renderer, error) {
	small, err := esset.GetFont(goregular.TTF, smallFontSize)
	if err != nil {
		return nil, fmt.Errorf("load font size %d: %w", smallFontSize, err)
	}
	large, err := esset.GetFont(goregular.TTF, largeFontSize)
	if err != nil {
		return nil, fmt.Errorf("load font size %d: %w", largeFontSize, err)
	}

	// Render every glyph once so the first real frame doesn't stall.
	tmp := ebiten.NewImage(1, 1)
	for _, face := range []text.Face{small, large} {
		text.Draw(tmp, glyphsToPreload, face, &text.DrawOptions{})
	}
	tmp.Deallocate()

	return &renderer{small: small, large: large}, nil
}

func (r *renderer) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(r.target, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (r *renderer) StrokeRect(x, y, w, h float64, c color.Color) {
	vector.StrokeRect(r.target, float32(x), float32(y), float32(w), float32(h), lineWidth, c, false)
}

func (r *renderer) Line(x0, y0, x1, y1 float64, c color.Color) {
	vector.StrokeLine(r.target, float32(x0), float32(y0), float32(x1), float32(y1), lineWidth, c, true)
}

func (r *renderer) Text(s string, x, y float64, size view.TextSize, c color.Color) {
	face := r.small
	if size == view.TextLarge {
		face = r.large
	}
	esset.DrawText(r.target, s, 0, x, y, face, toRGBA(c))
}

func toRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}
