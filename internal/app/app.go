//go:build ebiten

package app

import (
	"image/color"

	"mad-sand/internal/config"
	"mad-sand/internal/render"
	"mad-sand/internal/sandbox"
	"mad-sand/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hudWidth is the width of the status panel to the right of the grid.
const hudWidth = 200

var keyRunes = map[ebiten.Key]rune{
	ebiten.KeyDigit1: '1',
	ebiten.KeyDigit2: '2',
	ebiten.KeyDigit3: '3',
	ebiten.KeyDigit4: '4',
	ebiten.KeySpace:  ' ',
	ebiten.KeyN:      'n',
	ebiten.KeyG:      'g',
	ebiten.KeyS:      's',
	ebiten.KeyL:      'l',
	ebiten.KeyC:      'c',
}

// Game adapts a sandbox session to the ebiten.Game interface.
type Game struct {
	session *sandbox.Session
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	palette render.Palette

	scale   int
	tps     int
	keys    []ebiten.Key
	cmds    []sandbox.Command
	cursorX int
	cursorY int
	erasing bool
}

// New constructs a Game for the provided session.
func New(session *sandbox.Session, cfg config.Config) *Game {
	size := session.Size()
	palette := render.NewPalette(cfg)
	return &Game{
		session: session,
		painter: render.NewGridPainter(size.W, size.H, palette),
		overlay: ui.NewOverlay(cfg.Sandbox.CellSize, cfg.Sandbox.GridLine.RGBA()),
		hud:     ui.NewHUD(session, hudWidth),
		palette: palette,
		scale:   cfg.Sandbox.CellSize,
	}
}

// WindowSize returns the initial window size in pixels.
func (g *Game) WindowSize() (int, int) {
	size := g.session.Size()
	return size.W*g.scale + g.hud.Width(), size.H * g.scale
}

// Update collects the frame's input, applies it and advances the sandbox.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.cmds = g.cmds[:0]
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if r, ok := keyRunes[k]; ok {
			if cmd, ok := sandbox.CommandForKey(r); ok {
				g.cmds = append(g.cmds, cmd)
			}
		}
	}

	mx, my := ebiten.CursorPosition()
	g.cursorX, g.cursorY = sandbox.CellAt(mx, my, g.scale)
	primary := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	secondary := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	g.erasing = secondary && !primary
	if cmd, ok := sandbox.PointerCommand(g.cursorX, g.cursorY, primary, secondary); ok {
		g.cmds = append(g.cmds, cmd)
	}

	size := g.session.Size()
	g.hud.Update(size.W * g.scale)

	// Save/load failures are logged by the session and leave the grid intact.
	_, _ = g.session.Update(g.cmds)

	if rate := g.session.TickRate(); rate != g.tps {
		g.tps = rate
		ebiten.SetTPS(rate)
	}
	ebiten.SetWindowTitle(g.session.Status(ebiten.ActualFPS(), float64(g.tps)))
	return nil
}

// Draw renders the grid, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.painter.Blit(screen, g.session.Grid(), g.scale)

	size := g.session.Size()
	g.overlay.Draw(screen, size, g.session.ShowGrid(), ui.Cursor{
		X:       g.cursorX,
		Y:       g.cursorY,
		Erasing: g.erasing,
		Brush:   g.palette.Color(g.session.Selected()),
	})
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}
