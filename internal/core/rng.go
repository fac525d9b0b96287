package core

import "math/rand/v2"

// DirectionSource supplies the random tie-breaks used by the automaton.
type DirectionSource interface {
	// Direction returns -1 or +1 with equal probability.
	Direction() int
	// Choose returns a uniform index in [0, n). n is always at least 1.
	Choose(n int) int
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Direction returns -1 or +1.
func (r *RNG) Direction() int {
	if r.Bool() {
		return 1
	}
	return -1
}

// Choose returns a random index in [0, n).
func (r *RNG) Choose(n int) int {
	if n <= 1 {
		return 0
	}
	return r.r.IntN(n)
}

// Uint8n returns a random uint8 in [0, n).
func (r *RNG) Uint8n(n uint8) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(r.r.IntN(int(n)))
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

// ScriptedDirections replays a fixed sequence of draws, cycling when it runs
// out. Direction consumes one value and maps negatives to -1 and anything else
// to +1; Choose consumes one value and reduces it modulo n, except for n <= 1
// where there is nothing to choose. An empty script
// always yields -1 and index 0.
type ScriptedDirections struct {
	Seq  []int
	next int
}

// NewScriptedDirections returns a source replaying seq.
func NewScriptedDirections(seq ...int) *ScriptedDirections {
	return &ScriptedDirections{Seq: seq}
}

func (s *ScriptedDirections) draw() (int, bool) {
	if len(s.Seq) == 0 {
		return 0, false
	}
	v := s.Seq[s.next%len(s.Seq)]
	s.next++
	return v, true
}

// Direction returns the next scripted direction.
func (s *ScriptedDirections) Direction() int {
	v, ok := s.draw()
	if !ok || v < 0 {
		return -1
	}
	return 1
}

// Choose returns the next scripted index.
func (s *ScriptedDirections) Choose(n int) int {
	if n <= 1 {
		return 0
	}
	v, ok := s.draw()
	if !ok {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Draws reports how many values have been consumed.
func (s *ScriptedDirections) Draws() int { return s.next }
