// Package term is a terminal frontend for the sandbox. Each grid cell is
// drawn as one terminal cell, the mouse paints and erases, and the keyboard
// uses the same bindings as the window frontend.
package term

import (
	"context"
	"time"

	"mad-sand/internal/core"
	"mad-sand/internal/render"
	"mad-sand/internal/sandbox"

	"github.com/gdamore/tcell/v2"
)

var glyphs = [...]rune{
	core.Empty:    ' ',
	core.Wall:     '█',
	core.Liquid:   '▓',
	core.Granular: '▒',
	core.Gas:      '░',
}

const helpLine = "1-4 material  space pause  n step  g grid  s save  l load  c clear  q quit"

// gridGlyph marks empty cells while the grid overlay is on.
const gridGlyph = '·'

// Frontend drives a session from a tcell screen. The session is only
// touched from the goroutine running Run.
type Frontend struct {
	screen  tcell.Screen
	session *sandbox.Session
	palette render.Palette
	tone    Tone
	step    *core.FixedStep

	cursorX, cursorY   int
	primary, secondary bool
	fps                float64
}

// New wires a frontend. tone may be nil.
func New(screen tcell.Screen, session *sandbox.Session, palette render.Palette, tone Tone) *Frontend {
	return &Frontend{
		screen:  screen,
		session: session,
		palette: palette,
		tone:    tone,
		step:    core.NewFixedStep(session.TickRate()),
	}
}

// Run pumps events and ticks the session until the user quits, the screen
// closes or ctx is cancelled.
func (f *Frontend) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(f.step.Interval())
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !f.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			if dt := now.Sub(last); dt > 0 {
				f.fps = float64(time.Second) / float64(dt)
			}
			last = now
			f.Frame()
		}
	}
}

// HandleEvent applies one input event and reports whether to keep running.
func (f *Frontend) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if ev.Rune() == 'q' || ev.Rune() == 'Q' {
				return false
			}
			if cmd, ok := sandbox.CommandForKey(ev.Rune()); ok {
				f.apply(cmd)
			}
		}
	case *tcell.EventMouse:
		f.cursorX, f.cursorY = ev.Position()
		buttons := ev.Buttons()
		f.primary = buttons&tcell.ButtonPrimary != 0
		f.secondary = buttons&tcell.ButtonSecondary != 0
		if cmd, ok := sandbox.PointerCommand(f.cursorX, f.cursorY, f.primary, f.secondary); ok {
			f.apply(cmd)
		}
	case *tcell.EventResize:
		f.screen.Sync()
	}
	return true
}

func (f *Frontend) apply(cmd sandbox.Command) {
	err := f.session.Apply(cmd)
	if f.tone == nil {
		return
	}
	switch {
	case err != nil:
		f.tone.Play(CueError)
	case cmd.Kind == sandbox.CmdSave:
		f.tone.Play(CueSave)
	case cmd.Kind == sandbox.CmdLoad:
		f.tone.Play(CueLoad)
	}
}

// Frame applies held buttons, ticks when the pacing allows and redraws.
func (f *Frontend) Frame() {
	var cmds []sandbox.Command
	if cmd, ok := sandbox.PointerCommand(f.cursorX, f.cursorY, f.primary, f.secondary); ok {
		cmds = append(cmds, cmd)
	}
	if err := f.session.ApplyAll(cmds); err != nil {
		sandbox.Logger().Warn("frame edit failed", "err", err)
	}
	if f.step.ShouldStep() {
		f.session.Tick()
	}
	f.Draw()
}

// Draw paints the grid, the cursor and the status line.
func (f *Frontend) Draw() {
	f.screen.Clear()
	g := f.session.Grid()
	bg := f.palette.Color(core.Empty)
	base := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			m := g.Get(x, y)
			c := f.palette.Color(m)
			style := base.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			glyph := glyphs[m]
			if m == core.Empty && f.session.ShowGrid() {
				glyph = gridGlyph
			}
			f.screen.SetContent(x, y, glyph, nil, style)
		}
	}
	if g.InBounds(f.cursorX, f.cursorY) {
		mainc, _, style, _ := f.screen.GetContent(f.cursorX, f.cursorY)
		if f.secondary && !f.primary {
			style = style.Background(tcell.ColorRed)
		} else {
			style = style.Reverse(true)
		}
		f.screen.SetContent(f.cursorX, f.cursorY, mainc, nil, style)
	}

	status := f.session.Status(f.fps, float64(f.session.TickRate()))
	if f.session.Paused() {
		status += " | PAUSED"
	}
	drawText(f.screen, 0, g.H, status, tcell.StyleDefault)
	drawText(f.screen, 0, g.H+1, helpLine, tcell.StyleDefault.Dim(true))
	f.screen.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
