//go:build !ebiten

package ui

import (
	"image/color"

	"mad-sand/internal/core"
)

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// Cursor mirrors the GUI cursor description.
type Cursor struct {
	X, Y    int
	Erasing bool
	Brush   color.RGBA
}

// NewOverlay constructs a stub overlay.
func NewOverlay(int, color.RGBA) *Overlay { return &Overlay{} }

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, core.Size, bool, Cursor) {}
