// Package config loads the sandbox settings file.
//
// The file uses git-config style INI syntax:
//
//	[sandbox]
//	tick-rate = 100
//	grid-width = 64
//	save-path = data/mapsave.sbx
//
//	[colors]
//	wall = 92,92,92
//	liquid = "#0000ff"
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"mad-sand/internal/core"

	"gopkg.in/gcfg.v1"
)

// DefaultPath is where the settings file lives when no -config flag is given.
const DefaultPath = "data/sand-config.ini"

// Settings holds the [sandbox] section.
type Settings struct {
	TickRate    int    `gcfg:"tick-rate"`
	CellSize    int    `gcfg:"cell-pixel-size"`
	Width       int    `gcfg:"grid-width"`
	Height      int    `gcfg:"grid-height"`
	StartPaused bool   `gcfg:"start-paused"`
	ShowGrid    bool   `gcfg:"show-grid-overlay"`
	Background  Color  `gcfg:"background-color"`
	GridLine    Color  `gcfg:"grid-line-color"`
	SavePath    string `gcfg:"save-path"`
}

// MaterialColors holds the [colors] section.
type MaterialColors struct {
	Wall     Color
	Liquid   Color
	Granular Color
	Gas      Color
}

// For returns the color configured for m; Empty maps to black.
func (mc MaterialColors) For(m core.Material) Color {
	switch m {
	case core.Wall:
		return mc.Wall
	case core.Liquid:
		return mc.Liquid
	case core.Granular:
		return mc.Granular
	case core.Gas:
		return mc.Gas
	}
	return Color{}
}

// Config is the whole settings file.
type Config struct {
	Sandbox Settings
	Colors  MaterialColors
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Sandbox: Settings{
			TickRate:   100,
			CellSize:   8,
			Width:      64,
			Height:     64,
			Background: Color{0, 0, 0},
			GridLine:   Color{128, 128, 128},
			SavePath:   "data/mapsave.sbx",
		},
		Colors: MaterialColors{
			Wall:     Color{92, 92, 92},
			Liquid:   Color{0, 0, 255},
			Granular: Color{255, 128, 0},
			Gas:      Color{32, 32, 32},
		},
	}
}

// Palette returns colors indexed by core.Material, background first.
func (c Config) Palette() []Color {
	pal := []Color{c.Sandbox.Background}
	for _, m := range core.Materials() {
		pal = append(pal, c.Colors.For(m))
	}
	return pal
}

// Sanitize replaces out-of-range values with their defaults.
func (c *Config) Sanitize() {
	def := Defaults().Sandbox
	s := &c.Sandbox
	if s.TickRate <= 0 {
		s.TickRate = def.TickRate
	}
	if s.CellSize <= 0 {
		s.CellSize = def.CellSize
	}
	if s.Width <= 0 {
		s.Width = def.Width
	}
	if s.Height <= 0 {
		s.Height = def.Height
	}
	if s.SavePath == "" {
		s.SavePath = def.SavePath
	}
}

// Source describes where a loaded Config came from.
type Source int

const (
	// FromFile means the settings file was read successfully.
	FromFile Source = iota
	// Created means no settings file existed and defaults were written.
	Created
	// Recovered means the settings file was unreadable; it was moved aside
	// to <path>.bak and replaced with defaults.
	Recovered
)

func (s Source) String() string {
	switch s {
	case FromFile:
		return "file"
	case Created:
		return "created"
	case Recovered:
		return "recovered"
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// Parse reads settings from an INI string on top of the defaults.
func Parse(text string) (Config, error) {
	cfg := Defaults()
	if err := gcfg.FatalOnly(gcfg.ReadStringInto(&cfg, text)); err != nil {
		return Defaults(), err
	}
	cfg.Sanitize()
	return cfg, nil
}

// Load reads the settings at path. When the file is missing or cannot be
// parsed the defaults are returned and written to path. The returned error
// is non-nil only when writing the defaults failed or the parse error needs
// reporting; the Config is usable either way.
func Load(path string) (Config, Source, error) {
	cfg := Defaults()
	err := gcfg.FatalOnly(gcfg.ReadFileInto(&cfg, path))
	if err == nil {
		cfg.Sanitize()
		return cfg, FromFile, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		if werr := WriteFile(path, Defaults()); werr != nil {
			return Defaults(), Created, werr
		}
		return Defaults(), Created, nil
	}

	parseErr := fmt.Errorf("parse %s: %w", path, err)
	if rerr := os.Rename(path, path+".bak"); rerr != nil {
		return Defaults(), Recovered, errors.Join(parseErr, rerr)
	}
	if werr := WriteFile(path, Defaults()); werr != nil {
		return Defaults(), Recovered, errors.Join(parseErr, werr)
	}
	return Defaults(), Recovered, parseErr
}

var fileTemplate = template.Must(template.New("config").Parse(`; falling-sand sandbox settings
[sandbox]
tick-rate = {{.Sandbox.TickRate}}
cell-pixel-size = {{.Sandbox.CellSize}}
grid-width = {{.Sandbox.Width}}
grid-height = {{.Sandbox.Height}}
start-paused = {{.Sandbox.StartPaused}}
show-grid-overlay = {{.Sandbox.ShowGrid}}
background-color = {{.Sandbox.Background}}
grid-line-color = {{.Sandbox.GridLine}}
save-path = "{{.Sandbox.SavePath}}"

[colors]
wall = {{.Colors.Wall}}
liquid = {{.Colors.Liquid}}
granular = {{.Colors.Granular}}
gas = {{.Colors.Gas}}
`))

// Write renders cfg in settings-file syntax.
func Write(w io.Writer, cfg Config) error {
	return fileTemplate.Execute(w, cfg)
}

// WriteFile writes cfg to path, creating parent directories as needed.
func WriteFile(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if err := Write(f, cfg); err != nil {
		f.Close()
		return fmt.Errorf("write config: %w", err)
	}
	return f.Close()
}
