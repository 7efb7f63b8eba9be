package menu

import (
	"errors"
	"fmt"
)

// DefaultVisibleItems is how many rows of the asset list fit on screen.
const DefaultVisibleItems = 5

var ErrInvalidLayout = errors.New("invalid menu layout")

// Mode is the screen the navigator is on.
type Mode uint8

const (
	ModeMenu Mode = iota
	ModeDetail
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeDetail:
		return "detail"
	default:
		return fmt.Sprintf("mode(%d)", m)
	}
}

// Navigator tracks the selected asset and the window of rows shown in the
// menu. After every operation index lies in [offset, offset+visible).
type Navigator struct {
	count   int
	visible int
	index   int
	offset  int
	mode    Mode
}

// New returns a navigator on the menu with the first asset selected.
func New(count, visible int) (*Navigator, error) {
	if count < 1 || visible < 1 {
		return nil, fmt.Errorf("%w: %d assets, %d visible", ErrInvalidLayout, count, visible)
	}
	return &Navigator{count: count, visible: visible}, nil
}

func (n *Navigator) Index() int  { return n.index }
func (n *Navigator) Offset() int { return n.offset }
func (n *Navigator) Mode() Mode  { return n.mode }
func (n *Navigator) Count() int  { return n.count }

// Window returns the half-open range of indexes currently on screen.
func (n *Navigator) Window() (start, end int) {
	return n.offset, min(n.offset+n.visible, n.count)
}

// Next moves the selection down one row, wrapping to the top after the last
// asset. It does nothing outside the menu.
func (n *Navigator) Next() {
	if n.mode != ModeMenu {
		return
	}
	n.index = (n.index + 1) % n.count
	n.reflow()
}

// Select opens the detail view for the current asset and returns its index.
func (n *Navigator) Select() int {
	n.mode = ModeDetail
	return n.index
}

// Back returns to the menu, keeping the selection.
func (n *Navigator) Back() {
	n.mode = ModeMenu
}

// reflow shifts the window the least amount that brings index into view.
func (n *Navigator) reflow() {
	if n.index < n.offset {
		n.offset = n.index
	}
	if n.index >= n.offset+n.visible {
		n.offset = n.index - n.visible + 1
	}
	// With more rows than assets the list never scrolls.
	n.offset = max(0, min(n.offset, n.count-n.visible))
}
