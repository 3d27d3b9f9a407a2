package scroll

import "fmt"

// offsetStrategy binds the vertical and horizontal offset readers of a
// document.
type offsetStrategy func(d Document) (top, left func() int)

// documentOffsets is the closed table of document offset strategies.
var documentOffsets = map[Host]offsetStrategy{
	HostStandard: func(d Document) (func() int, func() int) {
		root := d.DocumentElement()
		return root.ScrollTop, root.ScrollLeft
	},
	HostWindowOffsets: func(d Document) (func() int, func() int) {
		w := d.Window()
		return w.ScrollY, w.ScrollX
	},
}

// resolver reads offsets and extents of one target. The readers are bound
// once at construction and never re-selected.
type resolver struct {
	source Listenable

	top  func() int
	left func() int

	targetHeight func() int
	targetWidth  func() int

	scrollableHeight func() int
	scrollableWidth  func() int
}

func newResolver(target Target) (*resolver, error) {
	switch t := target.(type) {
	case nil:
		return nil, ErrNilTarget
	case Document:
		strategy, ok := documentOffsets[t.Host()]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownHost, t.Host())
		}
		top, left := strategy(t)
		w, body := t.Window(), t.Body()
		return &resolver{
			source:           w,
			top:              top,
			left:             left,
			targetHeight:     w.InnerHeight,
			targetWidth:      w.InnerWidth,
			scrollableHeight: body.ClientHeight,
			scrollableWidth:  body.ClientWidth,
		}, nil
	case Element:
		return &resolver{
			source:           t,
			top:              t.ScrollTop,
			left:             t.ScrollLeft,
			targetHeight:     t.ClientHeight,
			targetWidth:      t.ClientWidth,
			scrollableHeight: t.ScrollHeight,
			scrollableWidth:  t.ScrollWidth,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
	}
}

func (r *resolver) position() Position {
	return Position{Top: r.top(), Left: r.left()}
}

func (r *resolver) remaining(p Position) RemainingPosition {
	return RemainingPosition{
		Bottom: r.scrollableHeight() - r.targetHeight() - p.Top,
		Right:  r.scrollableWidth() - r.targetWidth() - p.Left,
	}
}

func (r *resolver) phaseY(top int) Phase {
	return ClassifyPhase(top, r.targetHeight(), r.scrollableHeight())
}

func (r *resolver) phaseX(left int) Phase {
	return ClassifyPhase(left, r.targetWidth(), r.scrollableWidth())
}
