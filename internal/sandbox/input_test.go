package sandbox

import (
	"testing"

	"mad-sand/internal/core"

	"github.com/stretchr/testify/assert"
)

func TestCommandForKey(t *testing.T) {
	for _, tc := range []struct {
		key  rune
		want Command
	}{
		{'1', Select(core.Wall)},
		{'2', Select(core.Liquid)},
		{'3', Select(core.Granular)},
		{'4', Select(core.Gas)},
		{' ', Simple(CmdTogglePause)},
		{'N', Simple(CmdStep)},
		{'g', Simple(CmdToggleGrid)},
		{'S', Simple(CmdSave)},
		{'l', Simple(CmdLoad)},
	} {
		got, ok := CommandForKey(tc.key)
		assert.True(t, ok, "%q", tc.key)
		assert.Equal(t, tc.want, got, "%q", tc.key)
	}
	_, ok := CommandForKey('x')
	assert.False(t, ok)
}

func TestCellAtFloors(t *testing.T) {
	x, y := CellAt(17, 8, 8)
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, y)

	x, y = CellAt(-3, -8, 8)
	assert.Equal(t, -1, x)
	assert.Equal(t, -1, y)

	x, y = CellAt(-9, 5, 8)
	assert.Equal(t, -2, x)
	assert.Equal(t, 0, y)

	x, _ = CellAt(5, 0, 0)
	assert.Equal(t, 5, x)
}

func TestPointerCommand(t *testing.T) {
	cmd, ok := PointerCommand(1, 2, true, true)
	assert.True(t, ok)
	assert.Equal(t, Place(1, 2), cmd)

	cmd, ok = PointerCommand(1, 2, false, true)
	assert.True(t, ok)
	assert.Equal(t, Remove(1, 2), cmd)

	_, ok = PointerCommand(1, 2, false, false)
	assert.False(t, ok)
}

func TestPointerLeavingPlayfieldDoesNotEdit(t *testing.T) {
	s := New(Options{Width: 4, Height: 4})
	x, y := CellAt(-2, 10, 8)
	cmd, _ := PointerCommand(x, y, true, false)
	assert.NoError(t, s.Apply(cmd))
	assert.Zero(t, s.Occupied())
	assert.Equal(t, core.Empty, s.Grid().Get(0, 1))
}
