// Package automaton advances a falling-sand grid by one tick.
//
// A tick runs two scans. The first walks rows bottom-up and moves the
// materials that sink (liquid and granular); the second walks rows top-down
// and moves gas. Within a row cells are visited left to right. Any cell that
// lands on a coordinate the current scan has yet to visit is recorded in a
// processed mask, and masked coordinates are skipped, so nothing moves twice
// in the same tick.
package automaton

import "mad-sand/internal/core"

// Engine owns the per-tick bookkeeping for grid updates.
type Engine struct {
	rand  core.DirectionSource
	mask  *core.Mask
	moves int
}

// New returns an engine drawing tie-breaks from src.
func New(src core.DirectionSource) *Engine {
	if src == nil {
		src = core.NewRNG(0)
	}
	return &Engine{rand: src, mask: core.NewMask(0, 0)}
}

// SetSource replaces the tie-break source.
func (e *Engine) SetSource(src core.DirectionSource) {
	if src != nil {
		e.rand = src
	}
}

// Mask exposes the processed mask from the most recent tick.
func (e *Engine) Mask() *core.Mask { return e.mask }

// Moves reports how many swaps the most recent tick performed.
func (e *Engine) Moves() int { return e.moves }

// Step performs one full update of g.
func (e *Engine) Step(g *core.Grid) {
	e.mask.Resize(g.W, g.H)
	e.moves = 0
	if g.W == 0 || g.H == 0 {
		return
	}

	for y := g.H - 1; y >= 0; y-- {
		for x := 0; x < g.W; x++ {
			if e.mask.Marked(x, y) {
				continue
			}
			switch g.Get(x, y) {
			case core.Liquid:
				e.stepLiquid(g, x, y)
			case core.Granular:
				e.stepGranular(g, x, y)
			}
		}
	}

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if e.mask.Marked(x, y) {
				continue
			}
			if g.Get(x, y) == core.Gas {
				e.stepGas(g, x, y)
			}
		}
	}
}

// Straight-down moves need no mask entry: the destination row was scanned
// before the current one in the bottom-up pass.
func (e *Engine) stepLiquid(g *core.Grid, x, y int) {
	if y+1 < g.H && g.Get(x, y+1) == core.Empty {
		e.swap(g, x, y, x, y+1)
		return
	}
	dir := e.rand.Direction()
	nx := x + dir
	if nx >= 0 && nx < g.W && g.Get(nx, y) == core.Empty {
		e.swap(g, x, y, nx, y)
		e.mask.Mark(nx, y)
	}
}

func (e *Engine) stepGranular(g *core.Grid, x, y int) {
	if y+1 >= g.H {
		return
	}
	if sinksInto(g.Get(x, y+1)) {
		e.swap(g, x, y, x, y+1)
		return
	}
	var dirs [2]int
	n := 0
	if x > 0 && sinksInto(g.Get(x-1, y+1)) {
		dirs[n] = -1
		n++
	}
	if x+1 < g.W && sinksInto(g.Get(x+1, y+1)) {
		dirs[n] = 1
		n++
	}
	if n == 0 {
		return
	}
	nx := x + dirs[e.rand.Choose(n)]
	e.swap(g, x, y, nx, y+1)
	e.mask.Mark(nx, y+1)
}

func (e *Engine) stepGas(g *core.Grid, x, y int) {
	if y > 0 && displacedByGas(g.Get(x, y-1)) {
		e.swap(g, x, y, x, y-1)
		return
	}
	dir := e.rand.Direction()
	nx := x + dir
	if nx >= 0 && nx < g.W && displacedByGas(g.Get(nx, y)) {
		e.swap(g, x, y, nx, y)
		e.mask.Mark(nx, y)
	}
}

func (e *Engine) swap(g *core.Grid, x1, y1, x2, y2 int) {
	g.Swap(x1, y1, x2, y2)
	e.moves++
}

// sinksInto reports whether granular material can fall into a cell holding m.
func sinksInto(m core.Material) bool {
	return m == core.Empty || m == core.Liquid
}

// displacedByGas reports whether gas can rise or drift into a cell holding m.
func displacedByGas(m core.Material) bool {
	return m == core.Empty || m == core.Liquid || m == core.Granular
}
