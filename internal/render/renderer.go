//go:build ebiten

package render

import (
	"mad-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads the grid into a w*h image, one pixel per cell, and
// draws it scaled to the cell size.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette Palette
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int, palette Palette) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h), palette: palette}
	if w > 0 && h > 0 {
		gp.img = ebiten.NewImage(w, h)
	}
	return gp
}

// Blit converts g into pixels and draws it onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, g *core.Grid, scale int) {
	if gp.img == nil || g.W != gp.w || g.H != gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, g.Cells(), gp.palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
