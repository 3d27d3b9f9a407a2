package scroll

import "errors"

// Sentinel errors for observer construction.
var (
	// ErrUnsupportedTarget is returned when the target is neither a
	// Document nor an Element.
	ErrUnsupportedTarget = errors.New("unsupported scroll target")

	// ErrUnknownHost is returned when a Document reports a host that has
	// no offset strategy.
	ErrUnknownHost = errors.New("unknown scroll host")

	// ErrNilTarget is returned when the target is nil.
	ErrNilTarget = errors.New("scroll target cannot be nil")

	// ErrNoClock is returned when no clock was given with WithClock.
	ErrNoClock = errors.New("scroll observer requires a clock")
)
