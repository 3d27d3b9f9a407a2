// Package scroll derives semantic scroll streams from the raw scroll
// notifications of one surface.
//
// An Observer wraps a Document (a whole page seen through its window) or an
// Element (an in-page scrollable box) and exposes a family of streams:
//
//	Scroll, ScrollX, ScrollY          positions, coalesced to the default window
//	Listen, ListenX, ListenY          positions at an explicit window (<= 0: every sample)
//	ScrollStart, ScrollEnd            movement begins / settles
//	Scroll*DirectionChange            per-axis direction, on change only
//	ScrollingDown/Up/Left/Right       axis values gated by the current direction
//	ScrollXPhase, ScrollYPhase        start / mid / end of the range, on change only
//	Remaining, RemainingX, RemainingY distance left to scroll
//
// # Streams
//
// Stream is a small push-based stream type. Operators are package-level
// generic functions (Map, Filter, Distinct, Pairwise, Merge, SwitchMap,
// Throttle, Debounce, First). Share makes a stream multicast with a
// reference-counted connection; every stream an Observer returns is shared,
// so the native listener is attached once and released when the last
// subscriber leaves.
//
// # Threading
//
// The graph is single-threaded. Scroll notifications, clock callbacks and
// Subscribe/Unsubscribe calls must all run on one goroutine, so NewObserver
// requires a clock. Hosts with an event loop pass
// WithClock(NewLoopClock(post)) so that throttle and debounce timers are
// delivered on that loop. ManualClock drives the graph deterministically in
// tests and simulations.
//
// # Basic Usage
//
//	obs, err := scroll.NewObserver(pane, scroll.WithClock(clock))
//	if err != nil {
//	    return err
//	}
//	sub := obs.ScrollYPhase().Subscribe(func(p scroll.Phase) {
//	    if p == scroll.PhaseEnd {
//	        loadMore()
//	    }
//	})
//	defer sub.Unsubscribe()
package scroll
