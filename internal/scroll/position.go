package scroll

import "fmt"

// Position is a surface's absolute scroll offset.
type Position struct {
	Top  int
	Left int
}

// String returns "top,left".
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.Top, p.Left)
}

// RemainingPosition is the distance left to scroll on each axis. It is not
// clamped, so it can go negative when a surface reports inconsistent
// extents.
type RemainingPosition struct {
	Bottom int
	Right  int
}

// String returns "bottom,right".
func (r RemainingPosition) String() string {
	return fmt.Sprintf("%d,%d", r.Bottom, r.Right)
}

// Direction is a scroll direction. Vertical and horizontal values are
// distinct bits so a single type can carry either axis.
type Direction uint8

const (
	// DirectionTop means the vertical offset decreased.
	DirectionTop Direction = 1 << iota
	// DirectionBottom means the vertical offset increased.
	DirectionBottom
	// DirectionLeft means the horizontal offset decreased.
	DirectionLeft
	// DirectionRight means the horizontal offset increased.
	DirectionRight
)

// String returns a lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirectionTop:
		return "top"
	case DirectionBottom:
		return "bottom"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// IsVertical reports whether d is Top or Bottom.
func (d Direction) IsVertical() bool {
	return d == DirectionTop || d == DirectionBottom
}

// IsHorizontal reports whether d is Left or Right.
func (d Direction) IsHorizontal() bool {
	return d == DirectionLeft || d == DirectionRight
}

// Phase classifies an offset into the start, middle or end of the
// scrollable range.
type Phase uint8

const (
	// PhaseStart means the offset is zero.
	PhaseStart Phase = iota
	// PhaseMid means the offset is strictly between start and end.
	PhaseMid
	// PhaseEnd means the offset reached the end of the scrollable range.
	PhaseEnd
)

// String returns a lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMid:
		return "mid"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ClassifyPhase returns the phase of offset for a surface whose visible
// extent is target and whose content extent is scrollable. Start wins when
// the content does not overflow.
func ClassifyPhase(offset, target, scrollable int) Phase {
	if offset == 0 {
		return PhaseStart
	}
	if offset >= scrollable-target {
		return PhaseEnd
	}
	return PhaseMid
}

// verticalDirection compares two vertical offsets.
func verticalDirection(prev, next int) Direction {
	if prev < next {
		return DirectionBottom
	}
	return DirectionTop
}

// horizontalDirection compares two horizontal offsets.
func horizontalDirection(prev, next int) Direction {
	if prev < next {
		return DirectionRight
	}
	return DirectionLeft
}
