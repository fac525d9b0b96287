package sandbox

import (
	"fmt"

	"mad-sand/internal/core"
)

// CommandKind enumerates the requests a frontend can make.
type CommandKind uint8

const (
	CmdPlace CommandKind = iota
	CmdRemove
	CmdSelect
	CmdTogglePause
	CmdStep
	CmdToggleGrid
	CmdSave
	CmdLoad
	CmdClear
)

var commandNames = [...]string{
	CmdPlace:       "place",
	CmdRemove:      "remove",
	CmdSelect:      "select",
	CmdTogglePause: "toggle-pause",
	CmdStep:        "step",
	CmdToggleGrid:  "toggle-grid",
	CmdSave:        "save",
	CmdLoad:        "load",
	CmdClear:       "clear",
}

func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return fmt.Sprintf("command(%d)", uint8(k))
}

// Command is one discrete input event. X and Y are grid coordinates for
// place and remove; Material is used by select.
type Command struct {
	Kind     CommandKind
	X, Y     int
	Material core.Material
}

// Place builds a place-cell command.
func Place(x, y int) Command { return Command{Kind: CmdPlace, X: x, Y: y} }

// Remove builds a remove-cell command.
func Remove(x, y int) Command { return Command{Kind: CmdRemove, X: x, Y: y} }

// Select builds a select-material command.
func Select(m core.Material) Command { return Command{Kind: CmdSelect, Material: m} }

// Simple builds a command that carries no arguments.
func Simple(kind CommandKind) Command { return Command{Kind: kind} }

// Apply executes cmd. Only save and load can fail.
func (s *Session) Apply(cmd Command) error {
	switch cmd.Kind {
	case CmdPlace:
		s.Place(cmd.X, cmd.Y)
	case CmdRemove:
		s.Remove(cmd.X, cmd.Y)
	case CmdSelect:
		s.Select(cmd.Material)
	case CmdTogglePause:
		s.TogglePause()
	case CmdStep:
		s.RequestStep()
	case CmdToggleGrid:
		s.ToggleGrid()
	case CmdSave:
		return s.Save()
	case CmdLoad:
		return s.Load()
	case CmdClear:
		s.Clear()
	default:
		return fmt.Errorf("unknown command %v", cmd.Kind)
	}
	return nil
}

// ApplyAll executes cmds in order and returns the first error after running
// all of them.
func (s *Session) ApplyAll(cmds []Command) error {
	var first error
	for _, cmd := range cmds {
		if err := s.Apply(cmd); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Update runs one frame: apply the frame's commands, then tick once if the
// simulation flags allow it. It reports whether a tick ran.
func (s *Session) Update(cmds []Command) (bool, error) {
	err := s.ApplyAll(cmds)
	return s.Tick(), err
}
