package sandbox

import "mad-sand/internal/core"

// keyBindings maps the keyboard layout shared by the frontends.
var keyBindings = map[rune]Command{
	'1': Select(core.Wall),
	'2': Select(core.Liquid),
	'3': Select(core.Granular),
	'4': Select(core.Gas),
	' ': Simple(CmdTogglePause),
	'n': Simple(CmdStep),
	'g': Simple(CmdToggleGrid),
	's': Simple(CmdSave),
	'l': Simple(CmdLoad),
	'c': Simple(CmdClear),
}

// CommandForKey returns the command bound to key, ignoring case.
func CommandForKey(key rune) (Command, bool) {
	if key >= 'A' && key <= 'Z' {
		key += 'a' - 'A'
	}
	cmd, ok := keyBindings[key]
	return cmd, ok
}

// CellAt converts a pointer position in pixels to grid coordinates. It
// rounds toward negative infinity so positions left of or above the
// playfield never map onto row or column zero.
func CellAt(px, py, cellSize int) (int, int) {
	if cellSize <= 0 {
		cellSize = 1
	}
	return floorDiv(px, cellSize), floorDiv(py, cellSize)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// PointerCommand returns the edit for the buttons held over cell (x, y).
// The primary button wins when both are held.
func PointerCommand(x, y int, primary, secondary bool) (Command, bool) {
	switch {
	case primary:
		return Place(x, y), true
	case secondary:
		return Remove(x, y), true
	}
	return Command{}, false
}
