package term

import (
	"github.com/dshills/scrollwatch/internal/manager"
	"github.com/dshills/scrollwatch/internal/scroll"
	"github.com/dshills/scrollwatch/internal/viewport"
)

// Document presents the terminal viewport as a whole scrollable document.
// The window is the visible text area and the body spans the content.
type Document struct {
	vp   *viewport.Viewport
	host scroll.Host
}

// NewDocument wraps vp as a document read the way host requires.
func NewDocument(vp *viewport.Viewport, host scroll.Host) *Document {
	return &Document{vp: vp, host: host}
}

// Window returns the visible text area.
func (d *Document) Window() scroll.Window { return window{d.vp} }

// DocumentElement returns the root box, which tracks the scroll offset.
func (d *Document) DocumentElement() scroll.Box { return d.vp }

// Body returns the content box.
func (d *Document) Body() scroll.Box { return body{d.vp} }

// Host returns the configured host.
func (d *Document) Host() scroll.Host { return d.host }

// Viewport returns the underlying viewport.
func (d *Document) Viewport() *viewport.Viewport { return d.vp }

type window struct{ vp *viewport.Viewport }

func (w window) AddScrollListener(fn func()) func() { return w.vp.AddScrollListener(fn) }
func (w window) ScrollX() int                       { return w.vp.ScrollLeft() }
func (w window) ScrollY() int                       { return w.vp.ScrollTop() }
func (w window) InnerWidth() int                    { return w.vp.ClientWidth() }
func (w window) InnerHeight() int                   { return w.vp.ClientHeight() }

// body never scrolls itself; its client extent is the content extent.
type body struct{ vp *viewport.Viewport }

func (b body) ScrollTop() int    { return 0 }
func (b body) ScrollLeft() int   { return 0 }
func (b body) ClientHeight() int { return b.vp.ScrollHeight() }
func (b body) ClientWidth() int  { return b.vp.ScrollWidth() }
func (b body) ScrollHeight() int { return b.vp.ScrollHeight() }
func (b body) ScrollWidth() int  { return b.vp.ScrollWidth() }

// Anchor is a fixed cell in the document.
type Anchor struct {
	doc  *Document
	Line int
	Col  int
}

// NewAnchor returns an anchor at line and col.
func (d *Document) NewAnchor(line, col int) Anchor {
	return Anchor{doc: d, Line: line, Col: col}
}

// BoundingRect returns the anchor cell relative to the visible window.
func (a Anchor) BoundingRect() manager.Rect {
	return manager.Rect{
		Top:    a.Line - a.doc.vp.ScrollTop(),
		Left:   a.Col - a.doc.vp.ScrollLeft(),
		Width:  1,
		Height: 1,
	}
}
