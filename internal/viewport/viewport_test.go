package viewport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/scrollwatch/internal/scroll"
)

var _ scroll.Element = (*Viewport)(nil)

func newTestViewport() *Viewport {
	v := New(80, 24)
	v.SetContentSize(80, 100)
	return v
}

// settle runs Update at 60fps until the animation ends.
func settle(t *testing.T, v *Viewport) int {
	t.Helper()
	frames := 0
	for v.IsAnimating() {
		v.Update(1.0 / 60.0)
		frames++
		require.Less(t, frames, 1000, "animation did not converge")
	}
	return frames
}

func TestNew_ClampsMinimum(t *testing.T) {
	v := New(0, -3)
	assert.Equal(t, 1, v.ClientWidth())
	assert.Equal(t, 1, v.ClientHeight())
	assert.True(t, v.SmoothScroll())
}

func TestExtents(t *testing.T) {
	v := New(80, 24)
	assert.Equal(t, 24, v.ScrollHeight(), "empty content reports the client extent")
	assert.Equal(t, 80, v.ScrollWidth())

	v.SetContentSize(120, 100)
	assert.Equal(t, 100, v.ScrollHeight())
	assert.Equal(t, 120, v.ScrollWidth())
}

func TestScrollTo_Clamps(t *testing.T) {
	v := newTestViewport()

	v.ScrollTo(10, 0, false)
	assert.Equal(t, 10, v.ScrollTop())

	v.ScrollTo(500, 0, false)
	assert.Equal(t, 76, v.ScrollTop())

	v.ScrollTo(-5, 9, false)
	assert.Equal(t, 0, v.ScrollTop())
	assert.Equal(t, 0, v.ScrollLeft(), "content no wider than the viewport")
}

func TestScrollBy(t *testing.T) {
	v := newTestViewport()
	v.SetContentSize(200, 100)

	v.ScrollBy(5, 7, false)
	v.ScrollBy(3, -2, false)
	assert.Equal(t, 8, v.ScrollTop())
	assert.Equal(t, 5, v.ScrollLeft())
}

func TestListeners(t *testing.T) {
	v := newTestViewport()
	var order []string
	removeA := v.AddScrollListener(func() { order = append(order, "a") })
	v.AddScrollListener(func() { order = append(order, "b") })
	assert.Equal(t, 2, v.ListenerCount())

	v.ScrollTo(10, 0, false)
	assert.Equal(t, []string{"a", "b"}, order)

	// No movement, no notification.
	v.ScrollTo(10, 0, false)
	assert.Len(t, order, 2)

	removeA()
	v.ScrollBy(1, 0, false)
	assert.Equal(t, []string{"a", "b", "b"}, order)
	assert.Equal(t, 1, v.ListenerCount())
}

func TestListener_ReadsNewOffset(t *testing.T) {
	v := newTestViewport()
	var seen []int
	v.AddScrollListener(func() { seen = append(seen, v.ScrollTop()) })

	v.ScrollTo(30, 0, false)
	v.PageDown(false)
	assert.Equal(t, []int{30, 52}, seen)
}

func TestSmoothScroll(t *testing.T) {
	v := newTestViewport()
	notified := 0
	v.AddScrollListener(func() { notified++ })

	v.ScrollTo(50, 0, true)
	assert.Equal(t, 0, v.ScrollTop(), "smooth scroll starts in place")
	assert.True(t, v.IsAnimating())
	top, _ := v.Target()
	assert.Equal(t, 50, top)

	frames := settle(t, v)
	assert.Equal(t, 50, v.ScrollTop())
	assert.False(t, v.IsAnimating())
	assert.Greater(t, frames, 1)
	assert.Equal(t, frames, notified)
}

func TestSmoothScroll_Disabled(t *testing.T) {
	v := newTestViewport()
	v.SetSmoothScroll(false)

	v.ScrollTo(50, 0, true)
	assert.Equal(t, 50, v.ScrollTop())
	assert.False(t, v.IsAnimating())
}

func TestScrollBy_DuringAnimationExtendsTarget(t *testing.T) {
	v := newTestViewport()
	v.ScrollTo(20, 0, true)
	v.ScrollBy(10, 0, true)

	top, _ := v.Target()
	assert.Equal(t, 30, top)
	settle(t, v)
	assert.Equal(t, 30, v.ScrollTop())
}

func TestUpdate_Idle(t *testing.T) {
	v := newTestViewport()
	assert.False(t, v.Update(1.0/60.0))
}

func TestUpdate_MovesAtLeastOneCell(t *testing.T) {
	v := newTestViewport()
	v.ScrollTo(2, 0, true)

	assert.True(t, v.Update(0.0001))
	assert.Equal(t, 1, v.ScrollTop())
}

func TestStopAnimation(t *testing.T) {
	v := newTestViewport()
	v.ScrollTo(60, 0, true)
	v.Update(1.0 / 60.0)
	at := v.ScrollTop()

	v.StopAnimation()
	assert.False(t, v.IsAnimating())
	assert.False(t, v.Update(1.0/60.0))
	assert.Equal(t, at, v.ScrollTop())
}

func TestPaging(t *testing.T) {
	v := newTestViewport()

	v.PageDown(false)
	assert.Equal(t, 22, v.ScrollTop())
	v.HalfPageDown(false)
	assert.Equal(t, 34, v.ScrollTop())
	v.HalfPageUp(false)
	assert.Equal(t, 22, v.ScrollTop())
	v.PageUp(false)
	assert.Equal(t, 0, v.ScrollTop())
}

func TestScrollToBottom(t *testing.T) {
	v := newTestViewport()

	v.ScrollToBottom(false)
	assert.Equal(t, 76, v.ScrollTop())
	assert.InDelta(t, 1.0, v.ScrollPercent(), 0.0001)

	v.ScrollTo(0, 0, false)
	assert.Equal(t, 0, v.ScrollTop())
	assert.InDelta(t, 0.0, v.ScrollPercent(), 0.0001)
}

func TestScrollPercent_NoOverflow(t *testing.T) {
	v := New(80, 24)
	v.SetContentSize(80, 10)
	assert.Equal(t, 0.0, v.ScrollPercent())
}

func TestScrollToPercent(t *testing.T) {
	v := newTestViewport()
	v.ScrollToPercent(0.5, false)
	assert.Equal(t, 38, v.ScrollTop())

	v.ScrollToPercent(3, false)
	assert.Equal(t, 76, v.ScrollTop())
}

func TestCenterOn(t *testing.T) {
	v := newTestViewport()
	v.CenterOn(50, false)
	assert.Equal(t, 38, v.ScrollTop())

	v.CenterOn(3, false)
	assert.Equal(t, 0, v.ScrollTop())
}

func TestVisibleRange(t *testing.T) {
	v := newTestViewport()
	first, last := v.VisibleRange()
	assert.Equal(t, 0, first)
	assert.Equal(t, 23, last)

	v.SetContentSize(80, 10)
	_, last = v.VisibleRange()
	assert.Equal(t, 9, last)
}

func TestCanScrollBy(t *testing.T) {
	v := newTestViewport()

	assert.False(t, v.CanScrollBy(0, 0))
	assert.False(t, v.CanScrollBy(-5, 0))
	assert.False(t, v.CanScrollBy(0, 10))
	assert.True(t, v.CanScrollBy(5, 0))

	v.ScrollToBottom(false)
	assert.False(t, v.CanScrollBy(30, 0))
	assert.True(t, v.CanScrollBy(-1, 0))

	// Mid-animation the current offset differs from the target.
	v.SetSmoothScroll(true)
	v.ScrollTo(0, 0, true)
	v.Update(1.0 / 60.0)
	assert.True(t, v.CanScrollBy(0, 0))
}

func TestContentShrinkReclamps(t *testing.T) {
	v := newTestViewport()
	v.ScrollToBottom(false)
	notified := 0
	v.AddScrollListener(func() { notified++ })

	v.SetContentSize(80, 50)
	assert.Equal(t, 26, v.ScrollTop())
	assert.Equal(t, 1, notified)
}

func TestResizeReclamps(t *testing.T) {
	v := newTestViewport()
	v.ScrollToBottom(false)

	v.Resize(80, 40)
	assert.Equal(t, 60, v.ScrollTop())
	assert.Equal(t, 40, v.ClientHeight())
}

func TestObservedByScroll(t *testing.T) {
	v := newTestViewport()
	obs, err := scroll.NewObserver(v, scroll.WithClock(scroll.NewManualClock(time.Unix(0, 0))))
	require.NoError(t, err)

	var phases []scroll.Phase
	sub := obs.ScrollYPhase().Subscribe(func(p scroll.Phase) { phases = append(phases, p) })
	defer sub.Unsubscribe()

	v.ScrollTo(30, 0, false)
	v.ScrollToBottom(false)
	v.ScrollTo(0, 0, false)

	assert.Equal(t, []scroll.Phase{scroll.PhaseStart, scroll.PhaseMid, scroll.PhaseEnd, scroll.PhaseStart}, phases)
	assert.Equal(t, 1, v.ListenerCount())
}
