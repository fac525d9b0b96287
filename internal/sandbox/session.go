// Package sandbox holds the state of one interactive falling-sand session:
// the grid, the automaton, the brush and the simulation flags. A Session is
// owned by a single goroutine; frontends turn input into Commands and call
// Apply and Tick from their update loop.
package sandbox

import (
	"errors"
	"fmt"
	"strconv"

	"mad-sand/internal/automaton"
	"mad-sand/internal/config"
	"mad-sand/internal/core"
	"mad-sand/internal/persist"
)

// Options configures a new Session.
type Options struct {
	Width, Height int
	Seed          int64
	SavePath      string
	TickRate      int
	StartPaused   bool
	ShowGrid      bool

	// Source overrides the seeded tie-break source, mainly for tests.
	Source core.DirectionSource
}

// Session is the explicit simulation state shared by the engine, the edit
// interface and the frontends.
type Session struct {
	grid   *core.Grid
	engine *automaton.Engine

	occupied      int
	selected      core.Material
	paused        bool
	stepRequested bool
	showGrid      bool
	ticks         uint64
	tickRate      int
	savePath      string
}

// New creates a session with an empty grid.
func New(opts Options) *Session {
	src := opts.Source
	if src == nil {
		src = core.NewRNG(opts.Seed)
	}
	rate := opts.TickRate
	if rate <= 0 {
		rate = 60
	}
	return &Session{
		grid:     core.NewGrid(opts.Width, opts.Height),
		engine:   automaton.New(src),
		selected: core.Wall,
		paused:   opts.StartPaused,
		showGrid: opts.ShowGrid,
		tickRate: rate,
		savePath: opts.SavePath,
	}
}

// NewFromConfig creates a session sized and flagged by cfg.
func NewFromConfig(cfg config.Config, seed int64) *Session {
	return New(Options{
		Width:       cfg.Sandbox.Width,
		Height:      cfg.Sandbox.Height,
		Seed:        seed,
		SavePath:    cfg.Sandbox.SavePath,
		TickRate:    cfg.Sandbox.TickRate,
		StartPaused: cfg.Sandbox.StartPaused,
		ShowGrid:    cfg.Sandbox.ShowGrid,
	})
}

// Grid exposes the live grid. Callers must not retain it across ticks from
// another goroutine.
func (s *Session) Grid() *core.Grid { return s.grid }

// Size returns the grid dimensions.
func (s *Session) Size() core.Size { return s.grid.Size() }

// Occupied returns the occupancy counter.
func (s *Session) Occupied() int { return s.occupied }

// Selected returns the active brush material.
func (s *Session) Selected() core.Material { return s.selected }

// Paused reports whether automatic ticking is suspended.
func (s *Session) Paused() bool { return s.paused }

// ShowGrid reports whether the grid overlay is enabled.
func (s *Session) ShowGrid() bool { return s.showGrid }

// Ticks returns how many automaton steps have run.
func (s *Session) Ticks() uint64 { return s.ticks }

// TickRate returns the ticks-per-second cap frontends should honour.
func (s *Session) TickRate() int { return s.tickRate }

// SavePath returns the file used by save and load.
func (s *Session) SavePath() string { return s.savePath }

// LastMoves reports how many swaps the most recent tick performed.
func (s *Session) LastMoves() int { return s.engine.Moves() }

// Tick advances the automaton once unless the session is paused. A pending
// single-step request runs one tick even while paused and is consumed.
func (s *Session) Tick() bool {
	if s.paused && !s.stepRequested {
		return false
	}
	s.stepRequested = false
	s.engine.Step(s.grid)
	s.ticks++
	return true
}

// TogglePause flips the paused flag.
func (s *Session) TogglePause() { s.paused = !s.paused }

// RequestStep schedules one tick for the next Tick call.
func (s *Session) RequestStep() { s.stepRequested = true }

// ToggleGrid flips the overlay flag.
func (s *Session) ToggleGrid() { s.showGrid = !s.showGrid }

// Save writes the grid to the session's save path.
func (s *Session) Save() error {
	if err := persist.SaveFile(s.savePath, s.grid); err != nil {
		Logger().Error("save failed", "path", s.savePath, "err", err)
		return err
	}
	Logger().Info("saved", "path", s.savePath, "cells", s.occupied)
	return nil
}

// Load replaces the grid with the contents of the save file. A missing
// file leaves the grid as it is and is not an error; a malformed file
// leaves the grid as it is and is reported.
func (s *Session) Load() error {
	n, err := persist.LoadFile(s.savePath, s.grid)
	if errors.Is(err, persist.ErrNoSave) {
		Logger().Debug("load skipped, no save file", "path", s.savePath)
		return nil
	}
	if err != nil {
		Logger().Warn("load failed", "path", s.savePath, "err", err)
		return err
	}
	s.occupied = n
	Logger().Info("loaded", "path", s.savePath, "cells", n)
	return nil
}

// Status renders the one-line summary shown in the window title.
func (s *Session) Status(fps, tps float64) string {
	return fmt.Sprintf("SandBox | Material: %s | Cells: %d / %d | FPS: %.3f / %.1f",
		s.selected.Label(), s.occupied, s.grid.Size().Area(), fps, tps)
}

// Parameters reports the session state for the HUD panel.
func (s *Session) Parameters() core.ParameterSnapshot {
	size := s.grid.Size()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Simulation",
			Params: []core.Parameter{
				intParam("tick-rate", "Tick rate", s.tickRate),
				boolParam("paused", "Paused", s.paused),
				stringParam("ticks", "Ticks", strconv.FormatUint(s.ticks, 10)),
				intParam("moves", "Moves", s.engine.Moves()),
			},
		},
		{
			Name: "Grid",
			Params: []core.Parameter{
				stringParam("size", "Size", fmt.Sprintf("%dx%d", size.W, size.H)),
				intParam("cells", "Cells", s.occupied),
				boolParam("grid-overlay", "Overlay", s.showGrid),
			},
		},
		{
			Name: "Brush",
			Params: []core.Parameter{
				stringParam("material", "Material", s.selected.Label()),
			},
		},
	}}
}

// ParameterControls lists the values the HUD may adjust.
func (s *Session) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "tick-rate", Label: "Tick rate", Step: 10, Min: 1, Max: 1000},
	}
}

// SetIntParameter updates an adjustable value. Unknown keys report false.
func (s *Session) SetIntParameter(key string, value int) bool {
	switch key {
	case "tick-rate":
		for _, c := range s.ParameterControls() {
			if c.Key == key {
				value = c.Clamp(value)
			}
		}
		s.tickRate = value
		return true
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(value)}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: value}
}
