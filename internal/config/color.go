package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an opaque RGB color as written in the settings file, either
// r,g,b or "#rrggbb". The hex form must be quoted since '#' starts a comment.
type Color struct {
	R, G, B uint8
}

// RGBA converts c to an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// String formats c as "r,g,b".
func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return fmt.Errorf("color %q: want #rrggbb", s)
		}
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return fmt.Errorf("color %q: %w", s, err)
		}
		*c = Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
		return nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("color %q: want r,g,b", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return fmt.Errorf("color %q: component %d: %w", s, i, err)
		}
		rgb[i] = uint8(v)
	}
	*c = Color{R: rgb[0], G: rgb[1], B: rgb[2]}
	return nil
}
