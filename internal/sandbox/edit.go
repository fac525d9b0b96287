package sandbox

import "mad-sand/internal/core"

// Place paints the selected material at (x, y).
func (s *Session) Place(x, y int) { s.PlaceMaterial(x, y, s.selected) }

// PlaceMaterial paints m at (x, y). Coordinates outside the grid are
// ignored, since a dragged pointer routinely leaves the playfield.
func (s *Session) PlaceMaterial(x, y int, m core.Material) {
	if !s.grid.InBounds(x, y) || !m.Valid() {
		return
	}
	prev := s.grid.Get(x, y)
	if prev == core.Empty && m != core.Empty {
		s.occupied++
	} else if prev != core.Empty && m == core.Empty {
		s.occupied--
	}
	s.grid.Set(x, y, m)
}

// Remove empties (x, y). Out-of-bounds coordinates are ignored.
func (s *Session) Remove(x, y int) {
	if !s.grid.InBounds(x, y) {
		return
	}
	if s.grid.Get(x, y) == core.Empty {
		return
	}
	s.occupied--
	s.grid.Set(x, y, core.Empty)
}

// Select sets the brush material. Empty is not a brush; use Remove.
func (s *Session) Select(m core.Material) {
	if m == core.Empty || !m.Valid() {
		return
	}
	s.selected = m
}

// Clear empties the whole grid.
func (s *Session) Clear() {
	s.grid.Clear()
	s.occupied = 0
}
