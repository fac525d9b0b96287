// Package persist reads and writes the sandbox save format.
//
// A save is a single line of colon separated fields. The first field is the
// header "w<W>,h<H>"; it is followed by W*H material tokens. Encode writes
// the cells column by column (outer loop over x). Decode walks rows and reads
// token y+x*W for cell (x, y). The two orders agree only for square grids;
// both are kept as-is so existing save files keep loading the same way.
package persist

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mad-sand/internal/core"
)

var (
	// ErrNoSave is returned by LoadFile when the save file does not exist.
	ErrNoSave = errors.New("persist: no save file")
	// ErrMalformedHeader reports an unparsable "w<W>,h<H>" header.
	ErrMalformedHeader = errors.New("persist: malformed header")
	// ErrTokenCount reports a cell list that does not match the header.
	ErrTokenCount = errors.New("persist: cell count does not match header")
	// ErrUnknownCell reports a token that names no material.
	ErrUnknownCell = errors.New("persist: unknown cell token")
)

const separator = ":"

// Encode serializes g.
func Encode(g *core.Grid) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "w%d,h%d%s", g.W, g.H, separator)
	first := true
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			if !first {
				b.WriteString(separator)
			}
			first = false
			b.WriteString(g.Get(x, y).String())
		}
	}
	return b.Bytes()
}

// Header holds the dimensions declared by a save file.
type Header struct {
	W, H int
}

// ParseHeader parses a "w<W>,h<H>" field.
func ParseHeader(field string) (Header, error) {
	parts := strings.Split(field, ",")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "w") || !strings.HasPrefix(parts[1], "h") {
		return Header{}, fmt.Errorf("%w: %q", ErrMalformedHeader, field)
	}
	w, err := strconv.Atoi(parts[0][1:])
	if err != nil || w < 0 {
		return Header{}, fmt.Errorf("%w: width %q", ErrMalformedHeader, parts[0])
	}
	h, err := strconv.Atoi(parts[1][1:])
	if err != nil || h < 0 {
		return Header{}, fmt.Errorf("%w: height %q", ErrMalformedHeader, parts[1])
	}
	return Header{W: w, H: h}, nil
}

// Decode parses data into dst and returns the number of non-empty cells it
// placed. Cells that fall outside dst are dropped. On error dst is left
// unchanged.
func Decode(data []byte, dst *core.Grid) (int, error) {
	fields := strings.Split(strings.TrimSpace(string(data)), separator)
	hdr, err := ParseHeader(fields[0])
	if err != nil {
		return 0, err
	}
	tokens := fields[1:]
	if hdr.W*hdr.H == 0 && len(tokens) == 1 && tokens[0] == "" {
		tokens = nil
	}
	if len(tokens) != hdr.W*hdr.H {
		return 0, fmt.Errorf("%w: header %dx%d, got %d cells", ErrTokenCount, hdr.W, hdr.H, len(tokens))
	}
	cells := make([]core.Material, len(tokens))
	for i, tok := range tokens {
		m, ok := core.ParseMaterial(tok)
		if !ok {
			return 0, fmt.Errorf("%w: %q at position %d", ErrUnknownCell, tok, i)
		}
		cells[i] = m
	}

	next := core.NewGrid(dst.W, dst.H)
	occupied := 0
	for y := 0; y < hdr.H; y++ {
		for x := 0; x < hdr.W; x++ {
			idx := y + x*hdr.W
			if idx >= len(cells) {
				return 0, fmt.Errorf("%w: cell (%d,%d) reads token %d of %d", ErrTokenCount, x, y, idx, len(cells))
			}
			if !next.InBounds(x, y) {
				continue
			}
			m := cells[idx]
			if m != core.Empty {
				occupied++
			}
			next.Set(x, y, m)
		}
	}
	copy(dst.Cells(), next.Cells())
	return occupied, nil
}

// SaveFile writes g to path, creating parent directories as needed.
func SaveFile(path string, g *core.Grid) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create save dir: %w", err)
		}
	}
	if err := os.WriteFile(path, Encode(g), 0o644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// LoadFile reads the save at path into dst. A missing file yields ErrNoSave.
func LoadFile(path string, dst *core.Grid) (int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, ErrNoSave
	}
	if err != nil {
		return 0, fmt.Errorf("read save: %w", err)
	}
	n, err := Decode(data, dst)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	return n, nil
}
