package core

// Grid stores a fixed-size 2D field of materials in row-major order. The
// origin is the top-left corner and y grows in the direction of gravity.
//
// Get, Set and Swap expect in-bounds coordinates; callers that take
// coordinates from user input must check InBounds first.
type Grid struct {
	W, H int
	data []Material
}

// NewGrid allocates an empty grid. Negative dimensions are treated as zero.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{W: w, H: h, data: make([]Material, w*h)}
}

// Cells exposes the backing slice so callers can read values directly.
func (g *Grid) Cells() []Material { return g.data }

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Dimensions returns width and height.
func (g *Grid) Dimensions() (int, int) { return g.W, g.H }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Get returns the material at (x, y).
func (g *Grid) Get(x, y int) Material { return g.data[y*g.W+x] }

// Set stores m at (x, y).
func (g *Grid) Set(x, y int, m Material) { g.data[y*g.W+x] = m }

// Swap exchanges the contents of two cells.
func (g *Grid) Swap(x1, y1, x2, y2 int) {
	a := y1*g.W + x1
	b := y2*g.W + x2
	if a == b {
		return
	}
	g.data[a], g.data[b] = g.data[b], g.data[a]
}

// Fill resets every cell to m.
func (g *Grid) Fill(m Material) {
	for i := range g.data {
		g.data[i] = m
	}
}

// Clear fills the grid with Empty.
func (g *Grid) Clear() { g.Fill(Empty) }

// Count returns how many cells hold m.
func (g *Grid) Count(m Material) int {
	n := 0
	for _, c := range g.data {
		if c == m {
			n++
		}
	}
	return n
}

// Occupied returns the number of non-empty cells.
func (g *Grid) Occupied() int {
	return len(g.data) - g.Count(Empty)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{W: g.W, H: g.H, data: make([]Material, len(g.data))}
	copy(c.data, g.data)
	return c
}

// Mask is a per-tick boolean field marking cells that already moved.
type Mask struct {
	W, H int
	bits []bool
}

// NewMask allocates a cleared mask.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Mask{W: w, H: h, bits: make([]bool, w*h)}
}

// Resize reallocates the mask when the dimensions change and clears it.
func (m *Mask) Resize(w, h int) {
	if m.W != w || m.H != h {
		*m = *NewMask(w, h)
		return
	}
	m.Clear()
}

// Clear resets every entry to false.
func (m *Mask) Clear() {
	for i := range m.bits {
		m.bits[i] = false
	}
}

// Mark flags (x, y) as processed.
func (m *Mask) Mark(x, y int) { m.bits[y*m.W+x] = true }

// Marked reports whether (x, y) was flagged during the current tick.
func (m *Mask) Marked(x, y int) bool { return m.bits[y*m.W+x] }

// Count returns the number of flagged entries.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}
