package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scrollwatch/internal/scroll"
)

// NewClock returns a clock whose timers fire on the goroutine that polls
// screen, by posting them as interrupt events. Timer posts wait for queue
// space so that no settle is lost.
func NewClock(screen tcell.Screen) *scroll.LoopClock {
	return scroll.NewLoopClock(func(fn func()) {
		screen.PostEventWait(tcell.NewEventInterrupt(fn))
	})
}

// post queues fn for the event loop. It is dropped if the queue is full.
func post(screen tcell.Screen, fn func()) bool {
	return screen.PostEvent(tcell.NewEventInterrupt(fn)) == nil
}
