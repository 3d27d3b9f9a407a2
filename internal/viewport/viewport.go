// Package viewport provides a scrollable region model: offsets, visible and
// content extents, optional smooth scrolling, and scroll listeners.
//
// A Viewport satisfies scroll.Element, so it can be observed directly.
package viewport

import (
	"math"
	"slices"
	"sync"
)

// Viewport is the visible window onto a larger content area, measured in
// cells.
type Viewport struct {
	mu sync.RWMutex

	// Offset of the first visible cell
	top  int
	left int

	// Visible size
	width  int
	height int

	// Content size
	contentWidth  int
	contentHeight int

	// Scroll animation state
	targetTop    int
	targetLeft   int
	animating    bool
	smoothScroll bool

	listenerMu sync.Mutex
	listeners  map[uint64]func()
	nextID     uint64
}

// New creates a viewport with the given visible size.
// Width and height are clamped to a minimum of 1.
func New(width, height int) *Viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	return &Viewport{
		width:        width,
		height:       height,
		smoothScroll: true,
		listeners:    make(map[uint64]func()),
	}
}

// AddScrollListener registers fn to run after every offset change and
// returns the function that removes it. Listeners run on the goroutine
// that changed the offset, after the viewport lock is released.
func (v *Viewport) AddScrollListener(fn func()) func() {
	v.listenerMu.Lock()
	defer v.listenerMu.Unlock()

	id := v.nextID
	v.nextID++
	v.listeners[id] = fn

	return func() {
		v.listenerMu.Lock()
		defer v.listenerMu.Unlock()
		delete(v.listeners, id)
	}
}

// ListenerCount returns the number of registered scroll listeners.
func (v *Viewport) ListenerCount() int {
	v.listenerMu.Lock()
	defer v.listenerMu.Unlock()
	return len(v.listeners)
}

func (v *Viewport) notify() {
	v.listenerMu.Lock()
	ids := make([]uint64, 0, len(v.listeners))
	for id := range v.listeners {
		ids = append(ids, id)
	}
	// Registration order.
	slices.Sort(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, v.listeners[id])
	}
	v.listenerMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// mutate runs fn under the write lock and notifies listeners if the
// offset changed.
func (v *Viewport) mutate(fn func()) {
	v.mu.Lock()
	top, left := v.top, v.left
	fn()
	moved := v.top != top || v.left != left
	v.mu.Unlock()

	if moved {
		v.notify()
	}
}

// ScrollTop returns the vertical offset.
func (v *Viewport) ScrollTop() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.top
}

// ScrollLeft returns the horizontal offset.
func (v *Viewport) ScrollLeft() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.left
}

// ClientHeight returns the visible height.
func (v *Viewport) ClientHeight() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// ClientWidth returns the visible width.
func (v *Viewport) ClientWidth() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// ScrollHeight returns the content height, never less than the visible
// height.
func (v *Viewport) ScrollHeight() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return max(v.contentHeight, v.height)
}

// ScrollWidth returns the content width, never less than the visible
// width.
func (v *Viewport) ScrollWidth() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return max(v.contentWidth, v.width)
}

// Resize updates the visible size and re-clamps the offsets.
// Width and height are clamped to a minimum of 1.
func (v *Viewport) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	v.mutate(func() {
		v.width = width
		v.height = height
		v.clamp()
	})
}

// SetContentSize sets the content extent and re-clamps the offsets.
func (v *Viewport) SetContentSize(width, height int) {
	v.mutate(func() {
		v.contentWidth = max(width, 0)
		v.contentHeight = max(height, 0)
		v.clamp()
	})
}

// clamp keeps offsets and targets inside the scrollable range. Caller
// holds mu.
func (v *Viewport) clamp() {
	v.top = v.clampTop(v.top)
	v.left = v.clampLeft(v.left)
	v.targetTop = v.clampTop(v.targetTop)
	v.targetLeft = v.clampLeft(v.targetLeft)
}

func (v *Viewport) maxTop() int {
	return max(v.contentHeight-v.height, 0)
}

func (v *Viewport) maxLeft() int {
	return max(v.contentWidth-v.width, 0)
}

func (v *Viewport) clampTop(top int) int {
	return min(max(top, 0), v.maxTop())
}

func (v *Viewport) clampLeft(left int) int {
	return min(max(left, 0), v.maxLeft())
}

// SetSmoothScroll enables or disables smooth scrolling.
func (v *Viewport) SetSmoothScroll(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.smoothScroll = enabled
}

// SmoothScroll returns whether smooth scrolling is enabled.
func (v *Viewport) SmoothScroll() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.smoothScroll
}

// VisibleRange returns the first and last visible content rows.
func (v *Viewport) VisibleRange() (first, last int) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	last = v.top + v.height - 1
	if v.contentHeight > 0 && last > v.contentHeight-1 {
		last = v.contentHeight - 1
	}
	return v.top, last
}

// IsAnimating returns true if a scroll animation is in progress.
func (v *Viewport) IsAnimating() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.animating
}

// Target returns where the current animation will end, or the current
// offset when idle.
func (v *Viewport) Target() (top, left int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.targetTop, v.targetLeft
}

// ScrollTo moves the viewport so that (top, left) is the first visible
// cell. With smooth set and smooth scrolling enabled the move is animated
// by Update.
func (v *Viewport) ScrollTo(top, left int, smooth bool) {
	v.mutate(func() {
		v.scrollTo(top, left, smooth)
	})
}

// scrollTo is ScrollTo without locking. Caller holds mu.
func (v *Viewport) scrollTo(top, left int, smooth bool) {
	top = v.clampTop(top)
	left = v.clampLeft(left)

	if smooth && v.smoothScroll {
		v.targetTop = top
		v.targetLeft = left
		v.animating = v.top != top || v.left != left
		return
	}

	v.top, v.left = top, left
	v.targetTop, v.targetLeft = top, left
	v.animating = false
}

// ScrollBy moves the viewport by a relative amount. Relative moves during
// an animation are applied to its target.
func (v *Viewport) ScrollBy(deltaTop, deltaLeft int, smooth bool) {
	v.mutate(func() {
		top, left := v.top, v.left
		if v.animating {
			top, left = v.targetTop, v.targetLeft
		}
		v.scrollTo(top+deltaTop, left+deltaLeft, smooth)
	})
}

// CanScrollBy reports whether ScrollBy(deltaTop, deltaLeft) would leave
// the viewport somewhere other than its current offset once clamped.
func (v *Viewport) CanScrollBy(deltaTop, deltaLeft int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	top, left := v.top, v.left
	if v.animating {
		top, left = v.targetTop, v.targetLeft
	}
	return v.clampTop(top+deltaTop) != v.top || v.clampLeft(left+deltaLeft) != v.left
}

// CenterOn scrolls so that line sits in the middle of the viewport.
func (v *Viewport) CenterOn(line int, smooth bool) {
	v.mutate(func() {
		v.scrollTo(line-v.height/2, v.left, smooth)
	})
}

// Update advances scroll animation by dt seconds.
// Returns true if the viewport moved.
func (v *Viewport) Update(dt float64) bool {
	moved := false
	v.mutate(func() {
		if !v.animating {
			return
		}
		top, left := v.top, v.left
		v.top = step(v.top, v.targetTop, dt)
		v.left = step(v.left, v.targetLeft, dt)
		moved = v.top != top || v.left != left

		if v.top == v.targetTop && v.left == v.targetLeft {
			v.animating = false
		}
	})
	return moved
}

// step moves current towards target with exponential decay, at least one
// cell per call so that animations always converge.
func step(current, target int, dt float64) int {
	diff := float64(target - current)
	if math.Abs(diff) < 0.5 {
		return target
	}

	// ~20% of the remaining distance per frame at 60fps
	factor := 1.0 - math.Pow(0.1, dt*10)
	move := diff * factor

	if math.Abs(move) < 1.0 {
		if diff > 0 {
			move = 1.0
		} else {
			move = -1.0
		}
	}

	if math.Abs(move) >= math.Abs(diff) {
		return target
	}
	return current + int(move)
}

// StopAnimation stops any ongoing scroll animation where it is.
func (v *Viewport) StopAnimation() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.animating = false
	v.targetTop = v.top
	v.targetLeft = v.left
}
