package scroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualClock_FiresInDeadlineOrder(t *testing.T) {
	c := NewManualClock(epoch)
	var order []string

	c.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	c.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, epoch.Add(20*time.Millisecond), c.Now())

	c.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, c.Pending())
}

func TestManualClock_NowDuringCallback(t *testing.T) {
	c := NewManualClock(epoch)
	var at time.Time
	c.AfterFunc(15*time.Millisecond, func() { at = c.Now() })

	c.Advance(time.Second)
	assert.Equal(t, epoch.Add(15*time.Millisecond), at)
}

func TestManualClock_ChainedTimers(t *testing.T) {
	c := NewManualClock(epoch)
	fired := 0
	var tick func()
	tick = func() {
		fired++
		c.AfterFunc(10*time.Millisecond, tick)
	}
	c.AfterFunc(10*time.Millisecond, tick)

	c.Advance(55 * time.Millisecond)
	assert.Equal(t, 5, fired)
}

func TestManualClock_Stop(t *testing.T) {
	c := NewManualClock(epoch)
	fired := false
	timer := c.AfterFunc(10*time.Millisecond, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	c.Advance(time.Second)
	assert.False(t, fired)
}

func TestLoopClock_PostsOntoLoop(t *testing.T) {
	loop := make(chan func(), 4)
	c := NewLoopClock(func(fn func()) { loop <- fn })

	ran := make(chan struct{})
	c.AfterFunc(time.Millisecond, func() { close(ran) })

	select {
	case fn := <-loop:
		select {
		case <-ran:
			t.Fatal("callback ran before the loop executed it")
		default:
		}
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timer was never posted")
	}

	select {
	case <-ran:
	default:
		t.Fatal("callback did not run")
	}
}

func TestLoopClock_StopAfterPost(t *testing.T) {
	loop := make(chan func(), 4)
	c := NewLoopClock(func(fn func()) { loop <- fn })

	fired := false
	timer := c.AfterFunc(time.Millisecond, func() { fired = true })

	var fn func()
	select {
	case fn = <-loop:
	case <-time.After(2 * time.Second):
		t.Fatal("timer was never posted")
	}

	require.True(t, timer.Stop())
	fn()
	assert.False(t, fired)
}
