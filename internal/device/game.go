package device

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/temidaradev/ebiticker/internal/app"
	"github.com/temidaradev/ebiticker/internal/logger"
	"github.com/temidaradev/ebiticker/internal/view"
)

// Game runs the ticker inside an ebiten window sized like the handheld's
// screen. ebiten calls Update and Draw from one goroutine, which is the
// ticker's only execution context.
type Game struct {
	ctx      context.Context
	app      *app.App
	renderer *renderer
	log      logger.Interface
}

func NewGame(ctx context.Context, a *app.App, log logger.Interface) (*Game, error) {
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &Game{ctx: ctx, app: a, renderer: r, log: log}, nil
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	for _, ev := range pollEvents() {
		g.log.Debug("button", logger.NewField("event", ev.String()))
		g.app.Handle(ev)
	}

	if err := g.app.Tick(g.ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.target = screen
	g.app.Draw(g.renderer)
}

func (g *Game) Layout(_, _ int) (screenWidth, screenHeight int) {
	return view.ScreenWidth, view.ScreenHeight
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(g *Game, title string, scale float64) error {
	ebiten.SetWindowSize(int(view.ScreenWidth*scale), int(view.ScreenHeight*scale))
	ebiten.SetWindowTitle(title)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
