package manager

import "errors"

// Sentinel errors for the surface registry.
var (
	// ErrNilRoot is returned when the manager is built without a root
	// document or root scroller.
	ErrNilRoot = errors.New("root surface cannot be nil")

	// ErrUncomparableTarget is returned when a target cannot be used as a
	// registry key.
	ErrUncomparableTarget = errors.New("scroll target is not comparable")

	// ErrNilElement is returned when ScrollToElement is given no element.
	ErrNilElement = errors.New("element cannot be nil")
)
