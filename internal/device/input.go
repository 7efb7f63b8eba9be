package device

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/temidaradev/ebiticker/internal/app"
)

// The handheld has two buttons. On the desktop each can be pressed from the
// keyboard or the mouse.
var keyBindings = []struct {
	key   ebiten.Key
	event app.Event
}{
	{ebiten.KeyEnter, app.SelectPressed},
	{ebiten.KeySpace, app.SelectPressed},
	{ebiten.KeyTab, app.NextPressed},
	{ebiten.KeyArrowDown, app.NextPressed},
	{ebiten.KeyN, app.NextPressed},
}

var mouseBindings = []struct {
	button ebiten.MouseButton
	event  app.Event
}{
	{ebiten.MouseButtonLeft, app.SelectPressed},
	{ebiten.MouseButtonRight, app.NextPressed},
}

// eventsFrom turns this frame's fresh presses into button events. Holding a
// key produces a single event.
func eventsFrom(keyJustPressed func(ebiten.Key) bool, mouseJustPressed func(ebiten.MouseButton) bool) []app.Event {
	var events []app.Event
	for _, b := range keyBindings {
		if keyJustPressed(b.key) {
			events = append(events, b.event)
		}
	}
	for _, b := range mouseBindings {
		if mouseJustPressed(b.button) {
			events = append(events, b.event)
		}
	}
	return events
}

func pollEvents() []app.Event {
	return eventsFrom(inpututil.IsKeyJustPressed, inpututil.IsMouseButtonJustPressed)
}
