package term

import "github.com/gdamore/tcell/v2"

// wheelStep is a parsed mouse wheel notch.
type wheelStep struct {
	// Lines and Cols are signed scroll deltas.
	Lines int
	Cols  int
}

// parseWheel turns a mouse event into a scroll delta. It returns false for
// events without a wheel button. Shift selects the larger step.
func parseWheel(e *tcell.EventMouse, lines, shiftLines int) (wheelStep, bool) {
	n := lines
	if e.Modifiers()&tcell.ModShift != 0 {
		n = shiftLines
	}

	buttons := e.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		return wheelStep{Lines: -n}, true
	case buttons&tcell.WheelDown != 0:
		return wheelStep{Lines: n}, true
	case buttons&tcell.WheelLeft != 0:
		return wheelStep{Cols: -n}, true
	case buttons&tcell.WheelRight != 0:
		return wheelStep{Cols: n}, true
	default:
		return wheelStep{}, false
	}
}
