package sandbox

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"mad-sand/internal/config"
	"mad-sand/internal/core"
	"mad-sand/internal/persist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, w, h int) *Session {
	t.Helper()
	return New(Options{
		Width:    w,
		Height:   h,
		SavePath: filepath.Join(t.TempDir(), "data", "mapsave.sbx"),
		TickRate: 100,
		Source:   core.NewScriptedDirections(1),
	})
}

func TestDefaults(t *testing.T) {
	s := newTestSession(t, 4, 4)
	assert.Equal(t, core.Wall, s.Selected())
	assert.False(t, s.Paused())
	assert.False(t, s.ShowGrid())
	assert.Zero(t, s.Occupied())
	assert.Equal(t, 100, s.TickRate())
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Sandbox.Width = 12
	cfg.Sandbox.Height = 7
	cfg.Sandbox.StartPaused = true
	cfg.Sandbox.ShowGrid = true

	s := NewFromConfig(cfg, 7)
	assert.Equal(t, core.Size{W: 12, H: 7}, s.Size())
	assert.True(t, s.Paused())
	assert.True(t, s.ShowGrid())
	assert.Equal(t, cfg.Sandbox.TickRate, s.TickRate())
	assert.Equal(t, cfg.Sandbox.SavePath, s.SavePath())
}

func TestPlaceIsIdempotent(t *testing.T) {
	s := newTestSession(t, 4, 4)
	s.Select(core.Granular)
	s.Place(1, 1)
	once := s.Grid().Clone()
	s.Place(1, 1)

	assert.Equal(t, once.Cells(), s.Grid().Cells())
	assert.Equal(t, 1, s.Occupied())
	assert.Equal(t, core.Granular, s.Grid().Get(1, 1))
}

func TestPlaceOverwriteKeepsCount(t *testing.T) {
	s := newTestSession(t, 4, 4)
	s.PlaceMaterial(0, 0, core.Wall)
	s.PlaceMaterial(0, 0, core.Liquid)
	assert.Equal(t, 1, s.Occupied())
	assert.Equal(t, core.Liquid, s.Grid().Get(0, 0))

	s.PlaceMaterial(0, 0, core.Empty)
	assert.Zero(t, s.Occupied())
}

func TestRemove(t *testing.T) {
	s := newTestSession(t, 3, 3)
	s.Place(2, 2)
	s.Remove(2, 2)
	assert.Zero(t, s.Occupied())
	assert.Equal(t, core.Empty, s.Grid().Get(2, 2))

	s.Remove(2, 2)
	assert.Zero(t, s.Occupied(), "removing an empty cell is a no-op")
}

func TestOutOfBoundsEditsAreIgnored(t *testing.T) {
	s := newTestSession(t, 3, 2)
	s.Place(1, 1)
	before := s.Grid().Clone()

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}, {100, 100}, {-5, 7}} {
		s.Place(p[0], p[1])
		s.PlaceMaterial(p[0], p[1], core.Gas)
		s.Remove(p[0], p[1])
	}
	assert.Equal(t, before.Cells(), s.Grid().Cells())
	assert.Equal(t, 1, s.Occupied())
}

func TestSelectIgnoresEmpty(t *testing.T) {
	s := newTestSession(t, 1, 1)
	s.Select(core.Gas)
	s.Select(core.Empty)
	s.Select(core.Material(99))
	assert.Equal(t, core.Gas, s.Selected())
}

func TestPauseAndSingleStep(t *testing.T) {
	s := newTestSession(t, 1, 3)
	s.Select(core.Liquid)
	s.Place(0, 0)

	require.NoError(t, s.Apply(Simple(CmdTogglePause)))
	assert.True(t, s.Paused())
	assert.False(t, s.Tick())
	assert.Equal(t, core.Liquid, s.Grid().Get(0, 0))

	require.NoError(t, s.Apply(Simple(CmdStep)))
	assert.True(t, s.Tick())
	assert.Equal(t, core.Liquid, s.Grid().Get(0, 1))
	assert.False(t, s.Tick(), "a single step is consumed")
	assert.Equal(t, uint64(1), s.Ticks())

	require.NoError(t, s.Apply(Simple(CmdTogglePause)))
	ran, err := s.Update(nil)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, core.Liquid, s.Grid().Get(0, 2))
}

func TestUpdateAppliesEditsBeforeTick(t *testing.T) {
	s := newTestSession(t, 1, 4)
	ran, err := s.Update([]Command{Select(core.Granular), Place(0, 0)})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, core.Granular, s.Grid().Get(0, 1), "placed cell falls in the same frame")
	assert.Equal(t, 1, s.Occupied())
	assert.Equal(t, 1, s.LastMoves())
}

func TestToggleGridAndClear(t *testing.T) {
	s := newTestSession(t, 2, 2)
	s.Place(0, 0)
	s.Place(1, 1)
	require.NoError(t, s.ApplyAll([]Command{Simple(CmdToggleGrid), Simple(CmdClear)}))
	assert.True(t, s.ShowGrid())
	assert.Zero(t, s.Occupied())
	assert.Zero(t, s.Grid().Occupied())
}

func TestUnknownCommand(t *testing.T) {
	s := newTestSession(t, 1, 1)
	assert.Error(t, s.Apply(Command{Kind: CommandKind(200)}))
	assert.Equal(t, "command(200)", CommandKind(200).String())
	assert.Equal(t, "toggle-pause", CmdTogglePause.String())
}

func TestSaveLoadRoundTripCount(t *testing.T) {
	s := newTestSession(t, 5, 5)
	s.PlaceMaterial(0, 4, core.Wall)
	s.PlaceMaterial(2, 1, core.Liquid)
	s.PlaceMaterial(3, 3, core.Gas)
	want := s.Grid().Clone()

	require.NoError(t, s.Apply(Simple(CmdSave)))
	require.FileExists(t, s.SavePath())

	s.Clear()
	s.Place(1, 1)
	require.NoError(t, s.Apply(Simple(CmdLoad)))
	assert.Equal(t, 3, s.Occupied())
	assert.Equal(t, want.Cells(), s.Grid().Cells())
}

func TestLoadMissingIsNoop(t *testing.T) {
	s := newTestSession(t, 3, 3)
	s.Place(1, 1)
	require.NoError(t, s.Load())
	assert.Equal(t, 1, s.Occupied())
	assert.Equal(t, core.Wall, s.Grid().Get(1, 1))
}

func TestLoadMalformedLeavesGrid(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	s := newTestSession(t, 3, 3)
	s.Place(1, 1)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.SavePath()), 0o755))
	require.NoError(t, os.WriteFile(s.SavePath(), []byte("w3,h3:air:air"), 0o644))

	err := s.Apply(Simple(CmdLoad))
	require.ErrorIs(t, err, persist.ErrTokenCount)
	assert.Equal(t, 1, s.Occupied())
	assert.Equal(t, core.Wall, s.Grid().Get(1, 1))
	assert.Contains(t, logs.String(), "load failed")
}

func TestStatusAndParameters(t *testing.T) {
	s := newTestSession(t, 4, 2)
	s.Select(core.Granular)
	s.Place(0, 0)
	assert.Equal(t, "SandBox | Material: Granular | Cells: 1 / 8 | FPS: 59.500 / 100.0", s.Status(59.5, 100))

	snap := s.Parameters()
	p, ok := snap.Lookup("material")
	require.True(t, ok)
	assert.Equal(t, "Granular", p.Value)
	p, ok = snap.Lookup("size")
	require.True(t, ok)
	assert.Equal(t, "4x2", p.Value)
}

func TestSetTickRateClamps(t *testing.T) {
	s := newTestSession(t, 1, 1)
	assert.True(t, s.SetIntParameter("tick-rate", 0))
	assert.Equal(t, 1, s.TickRate())
	assert.True(t, s.SetIntParameter("tick-rate", 5000))
	assert.Equal(t, 1000, s.TickRate())
	assert.False(t, s.SetIntParameter("gravity", 3))
}

func TestSessionConservesMaterials(t *testing.T) {
	s := New(Options{Width: 12, Height: 12, Seed: 99})
	mats := core.Materials()
	rng := core.NewRNG(3)
	for i := 0; i < 60; i++ {
		s.PlaceMaterial(rng.Choose(12), rng.Choose(12), mats[rng.Choose(len(mats))])
	}
	want := map[core.Material]int{}
	for _, m := range mats {
		want[m] = s.Grid().Count(m)
	}
	for i := 0; i < 100; i++ {
		s.Tick()
	}
	for _, m := range mats {
		assert.Equal(t, want[m], s.Grid().Count(m), m.Label())
	}
	assert.Equal(t, s.Grid().Occupied(), s.Occupied())
}
