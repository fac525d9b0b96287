//go:build ebiten

package ui

import (
	"image/color"

	"mad-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var eraseColor = color.RGBA{R: 255, A: 255}

// Overlay draws the grid lines and the cursor highlight on top of the cells.
type Overlay struct {
	scale    int
	lineCol  color.RGBA
	lines    *ebiten.Image
	linesFor core.Size
}

// NewOverlay constructs an overlay for the given cell size.
func NewOverlay(scale int, lineColor color.RGBA) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	return &Overlay{scale: scale, lineCol: lineColor}
}

// Cursor describes the highlighted cell.
type Cursor struct {
	X, Y    int
	Erasing bool
	Brush   color.RGBA
}

// Draw renders the optional grid lines and the cursor highlight.
func (o *Overlay) Draw(screen *ebiten.Image, size core.Size, showGrid bool, cur Cursor) {
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if showGrid {
		o.ensureLines(size)
		screen.DrawImage(o.lines, nil)
	}

	s := float32(o.scale)
	x := float32(cur.X) * s
	y := float32(cur.Y) * s
	outer := cur.Brush
	if cur.Erasing {
		outer = eraseColor
	}
	vector.StrokeRect(screen, x+1, y+1, s-2, s-2, 2, outer, false)
	vector.StrokeRect(screen, x+0.5, y+0.5, s-1, s-1, 1, color.Black, false)
}

// ensureLines caches the grid line image; it only changes with the size.
func (o *Overlay) ensureLines(size core.Size) {
	if o.lines != nil && o.linesFor == size {
		return
	}
	s := o.scale
	w, h := size.W*s, size.H*s
	o.lines = ebiten.NewImage(w, h)
	for x := 0; x < w; x += s {
		vector.StrokeLine(o.lines, float32(x)+0.5, 0, float32(x)+0.5, float32(h), 1, o.lineCol, false)
	}
	for y := 0; y < h; y += s {
		vector.StrokeLine(o.lines, 0, float32(y)+0.5, float32(w), float32(y)+0.5, 1, o.lineCol, false)
	}
	o.linesFor = size
}
