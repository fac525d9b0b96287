package config

import "flag"

// Flags represents the command-line parameters shared by the frontends.
// Zero-valued overrides leave the settings file untouched.
type Flags struct {
	Path    string
	Seed    int64
	Verbose bool

	Width  int
	Height int
	Scale  int
	TPS    int
}

// NewFlags returns Flags populated with defaults.
func NewFlags() *Flags {
	return &Flags{Path: DefaultPath, Seed: 42}
}

// Bind attaches the flags to the provided FlagSet.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.Path, "config", f.Path, "settings file (created with defaults if missing)")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "seed for the tie-break random source")
	fs.BoolVar(&f.Verbose, "v", f.Verbose, "enable debug logging")
	fs.IntVar(&f.Width, "w", f.Width, "override grid width")
	fs.IntVar(&f.Height, "h", f.Height, "override grid height")
	fs.IntVar(&f.Scale, "scale", f.Scale, "override cell pixel size")
	fs.IntVar(&f.TPS, "tps", f.TPS, "override tick rate")
}

// Apply copies the positive overrides into cfg.
func (f *Flags) Apply(cfg *Config) {
	if f.Width > 0 {
		cfg.Sandbox.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Sandbox.Height = f.Height
	}
	if f.Scale > 0 {
		cfg.Sandbox.CellSize = f.Scale
	}
	if f.TPS > 0 {
		cfg.Sandbox.TickRate = f.TPS
	}
}
