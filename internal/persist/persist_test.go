package persist

import (
	"os"
	"path/filepath"
	"testing"

	"mad-sand/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeColumnMajor(t *testing.T) {
	g := core.NewGrid(2, 2)
	g.Set(0, 0, core.Wall)
	g.Set(1, 0, core.Granular)
	g.Set(0, 1, core.Liquid)

	assert.Equal(t, "w2,h2:wall:water:sand:air", string(Encode(g)))
	assert.Equal(t, "w0,h0:", string(Encode(core.NewGrid(0, 0))))
}

func TestSquareRoundTripIsExact(t *testing.T) {
	rng := core.NewRNG(5)
	all := []core.Material{core.Empty, core.Wall, core.Liquid, core.Granular, core.Gas}
	g := core.NewGrid(9, 9)
	for i := range g.Cells() {
		g.Cells()[i] = all[rng.Choose(len(all))]
	}

	dst := core.NewGrid(9, 9)
	n, err := Decode(Encode(g), dst)
	require.NoError(t, err)
	assert.Equal(t, g.Occupied(), n)
	assert.Equal(t, g.Cells(), dst.Cells())
}

func TestNonSquareRoundTripDiverges(t *testing.T) {
	// Written column-major, read back with y+x*W indexing: for a 2x3 grid
	// token 2 is read twice and token 5 never.
	g := core.NewGrid(2, 3)
	g.Set(0, 0, core.Wall)
	g.Set(0, 2, core.Granular)
	g.Set(1, 0, core.Liquid)
	require.Equal(t, "w2,h3:wall:air:sand:water:air:air", string(Encode(g)))

	dst := core.NewGrid(2, 3)
	n, err := Decode(Encode(g), dst)
	require.NoError(t, err)
	assert.NotEqual(t, g.Cells(), dst.Cells())
	assert.Equal(t, []core.Material{
		core.Wall, core.Granular,
		core.Empty, core.Liquid,
		core.Granular, core.Empty,
	}, dst.Cells())
	assert.Equal(t, 4, n)
	assert.Equal(t, 3, g.Occupied())

	// Wider than tall: the read index runs past the token list.
	wide := core.NewGrid(3, 2)
	wide.Fill(core.Wall)
	_, err = Decode(Encode(wide), core.NewGrid(3, 2))
	assert.ErrorIs(t, err, ErrTokenCount)
}

func TestDecodeClipsToLiveGrid(t *testing.T) {
	src := core.NewGrid(3, 3)
	src.Fill(core.Granular)
	src.Set(0, 0, core.Wall)

	small := core.NewGrid(2, 2)
	n, err := Decode(Encode(src), small)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, core.Wall, small.Get(0, 0))
	assert.Equal(t, core.Granular, small.Get(1, 1))

	large := core.NewGrid(5, 4)
	large.Fill(core.Gas)
	n, err = Decode(Encode(src), large)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, 9, large.Occupied(), "cells outside the save are reset")
	assert.Equal(t, core.Empty, large.Get(4, 3))
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	for _, tc := range []struct {
		name string
		data string
		want error
	}{
		{name: "no header", data: "wall:wall", want: ErrMalformedHeader},
		{name: "missing height", data: "w2:air:air", want: ErrMalformedHeader},
		{name: "bad width", data: "wx,h1:air", want: ErrMalformedHeader},
		{name: "negative", data: "w-1,h1:air", want: ErrMalformedHeader},
		{name: "too few cells", data: "w2,h2:air:air:air", want: ErrTokenCount},
		{name: "too many cells", data: "w1,h1:air:air", want: ErrTokenCount},
		{name: "unknown token", data: "w1,h2:air:lava", want: ErrUnknownCell},
		{name: "empty", data: "", want: ErrMalformedHeader},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dst := core.NewGrid(2, 2)
			dst.Fill(core.Wall)
			_, err := Decode([]byte(tc.data), dst)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, 4, dst.Count(core.Wall), "grid must be untouched")
		})
	}
}

func TestDecodeToleratesTrailingNewline(t *testing.T) {
	dst := core.NewGrid(1, 1)
	n, err := Decode([]byte("w1,h1:sand\n"), dst)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, core.Granular, dst.Get(0, 0))
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "mapsave.sbx")
	g := core.NewGrid(4, 4)
	g.Set(1, 3, core.Liquid)
	g.Set(2, 0, core.Gas)
	require.NoError(t, SaveFile(path, g))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Encode(g), raw)

	dst := core.NewGrid(4, 4)
	n, err := LoadFile(path, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, g.Cells(), dst.Cells())
}

func TestLoadFileMissing(t *testing.T) {
	dst := core.NewGrid(2, 2)
	dst.Fill(core.Liquid)
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.sbx"), dst)
	assert.ErrorIs(t, err, ErrNoSave)
	assert.Equal(t, 4, dst.Count(core.Liquid))
}
