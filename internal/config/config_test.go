package config

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"mad-sand/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse(`
[sandbox]
tick-rate = 30
grid-width = 20
start-paused = true
background-color = "#102030"
save-path = "maps/a.sbx"

[colors]
liquid = 1, 2, 3
`)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Sandbox.TickRate)
	assert.Equal(t, 20, cfg.Sandbox.Width)
	assert.Equal(t, 64, cfg.Sandbox.Height)
	assert.True(t, cfg.Sandbox.StartPaused)
	assert.Equal(t, Color{0x10, 0x20, 0x30}, cfg.Sandbox.Background)
	assert.Equal(t, "maps/a.sbx", cfg.Sandbox.SavePath)
	assert.Equal(t, Color{1, 2, 3}, cfg.Colors.Liquid)
	assert.Equal(t, Defaults().Colors.Wall, cfg.Colors.Wall)
}

func TestParseSanitizesRanges(t *testing.T) {
	cfg, err := Parse("[sandbox]\ntick-rate = 0\ngrid-height = -4\ncell-pixel-size = 0\n")
	require.NoError(t, err)
	def := Defaults().Sandbox
	assert.Equal(t, def.TickRate, cfg.Sandbox.TickRate)
	assert.Equal(t, def.Height, cfg.Sandbox.Height)
	assert.Equal(t, def.CellSize, cfg.Sandbox.CellSize)
}

func TestParseRejectsBadColor(t *testing.T) {
	_, err := Parse("[colors]\nwall = 300,0,0\n")
	assert.Error(t, err)
}

func TestWriteParsesBack(t *testing.T) {
	want := Defaults()
	want.Sandbox.ShowGrid = true
	want.Colors.Gas = Color{9, 8, 7}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, want))
	got, err := Parse(buf.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "sand-config.ini")
	cfg, src, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Created, src)
	assert.Equal(t, Defaults(), cfg)
	require.FileExists(t, path)

	again, src, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FromFile, src)
	assert.Equal(t, Defaults(), again)
}

func TestLoadRecoversFromGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sand-config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[sandbox\ntick-rate = fast"), 0o644))

	cfg, src, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Recovered, src)
	assert.Equal(t, Defaults(), cfg)
	assert.FileExists(t, path+".bak")

	_, src, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, FromFile, src)
}

func TestPaletteOrderMatchesMaterials(t *testing.T) {
	cfg := Defaults()
	pal := cfg.Palette()
	require.Len(t, pal, 5)
	assert.Equal(t, cfg.Sandbox.Background, pal[core.Empty])
	assert.Equal(t, cfg.Colors.Wall, pal[core.Wall])
	assert.Equal(t, cfg.Colors.Liquid, pal[core.Liquid])
	assert.Equal(t, cfg.Colors.Granular, pal[core.Granular])
	assert.Equal(t, cfg.Colors.Gas, pal[core.Gas])
}

func TestFlagsApply(t *testing.T) {
	f := NewFlags()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-w", "10", "-tps", "5", "-config", "x.ini"}))

	cfg := Defaults()
	f.Apply(&cfg)
	assert.Equal(t, 10, cfg.Sandbox.Width)
	assert.Equal(t, 64, cfg.Sandbox.Height)
	assert.Equal(t, 5, cfg.Sandbox.TickRate)
	assert.Equal(t, "x.ini", f.Path)
}
