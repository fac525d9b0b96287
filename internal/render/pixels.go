package render

import (
	"image/color"

	"mad-sand/internal/config"
	"mad-sand/internal/core"
)

// Palette maps each core.Material to its display color.
type Palette []color.RGBA

// NewPalette builds a palette from the settings file colors.
func NewPalette(cfg config.Config) Palette {
	src := cfg.Palette()
	pal := make(Palette, len(src))
	for i, c := range src {
		pal[i] = c.RGBA()
	}
	return pal
}

// Color returns the color for m, falling back to the last entry for
// materials the palette does not cover.
func (p Palette) Color(m core.Material) color.RGBA {
	if len(p) == 0 {
		return color.RGBA{}
	}
	idx := int(m)
	if idx >= len(p) {
		idx = len(p) - 1
	}
	return p[idx]
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []core.Material, palette Palette) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	for i, c := range cells {
		base := i * 4
		col := palette.Color(c)
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
