package scroll

import "time"

// fakeElement is a scrollable box whose listeners are fired explicitly.
type fakeElement struct {
	top, left                 int
	clientHeight, clientWidth int
	scrollHeight, scrollWidth int
	listeners                 map[int]func()
	nextID                    int
	attachCount, detachCount  int
}

func newFakeElement(clientHeight, scrollHeight int) *fakeElement {
	return &fakeElement{
		clientHeight: clientHeight,
		clientWidth:  100,
		scrollHeight: scrollHeight,
		scrollWidth:  100,
		listeners:    make(map[int]func()),
	}
}

func (e *fakeElement) ScrollTop() int    { return e.top }
func (e *fakeElement) ScrollLeft() int   { return e.left }
func (e *fakeElement) ClientHeight() int { return e.clientHeight }
func (e *fakeElement) ClientWidth() int  { return e.clientWidth }
func (e *fakeElement) ScrollHeight() int { return e.scrollHeight }
func (e *fakeElement) ScrollWidth() int  { return e.scrollWidth }

func (e *fakeElement) AddScrollListener(fn func()) func() {
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	e.attachCount++
	return func() {
		if _, ok := e.listeners[id]; ok {
			delete(e.listeners, id)
			e.detachCount++
		}
	}
}

// notify fires every listener without moving.
func (e *fakeElement) notify() {
	for _, fn := range e.snapshot() {
		fn()
	}
}

func (e *fakeElement) snapshot() []func() {
	fns := make([]func(), 0, len(e.listeners))
	for i := 0; i < e.nextID; i++ {
		if fn, ok := e.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

func (e *fakeElement) scrollTo(top, left int) {
	e.top, e.left = top, left
	e.notify()
}

// fakeWindow is the window side of fakeDocument.
type fakeWindow struct {
	*fakeElement
	x, y int
}

func (w *fakeWindow) ScrollX() int     { return w.x }
func (w *fakeWindow) ScrollY() int     { return w.y }
func (w *fakeWindow) InnerWidth() int  { return w.clientWidth }
func (w *fakeWindow) InnerHeight() int { return w.clientHeight }

type fakeBox struct {
	top, left, height, width int
}

func (b *fakeBox) ScrollTop() int    { return b.top }
func (b *fakeBox) ScrollLeft() int   { return b.left }
func (b *fakeBox) ClientHeight() int { return b.height }
func (b *fakeBox) ClientWidth() int  { return b.width }
func (b *fakeBox) ScrollHeight() int { return b.height }
func (b *fakeBox) ScrollWidth() int  { return b.width }

type fakeDocument struct {
	window *fakeWindow
	root   *fakeBox
	body   *fakeBox
	host   Host
}

func newFakeDocument(host Host) *fakeDocument {
	return &fakeDocument{
		window: &fakeWindow{fakeElement: newFakeElement(200, 0)},
		root:   &fakeBox{},
		body:   &fakeBox{height: 1000, width: 100},
		host:   host,
	}
}

func (d *fakeDocument) Window() Window       { return d.window }
func (d *fakeDocument) DocumentElement() Box { return d.root }
func (d *fakeDocument) Body() Box            { return d.body }
func (d *fakeDocument) Host() Host           { return d.host }

// recorder collects the values a stream delivers.
type recorder[T any] struct {
	values []T
	sub    *Subscription
}

func record[T any](s *Stream[T]) *recorder[T] {
	r := &recorder[T]{}
	r.sub = s.Subscribe(func(v T) { r.values = append(r.values, v) })
	return r
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// harness pairs an element with an observer driven by a manual clock.
type harness struct {
	el    *fakeElement
	clock *ManualClock
	obs   *Observer
}

func newHarness(clientHeight, scrollHeight int) *harness {
	el := newFakeElement(clientHeight, scrollHeight)
	clock := NewManualClock(epoch)
	obs, err := NewObserver(el, WithClock(clock))
	if err != nil {
		panic(err)
	}
	return &harness{el: el, clock: clock, obs: obs}
}

// step lets more than one default window pass, then scrolls vertically.
func (h *harness) step(top int) {
	h.clock.Advance(DefaultThrottle + 10*time.Millisecond)
	h.el.scrollTo(top, h.el.left)
}
