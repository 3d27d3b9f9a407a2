package scroll

import "github.com/dshills/scrollwatch/internal/logging"

// sample is one raw reading. kickoff marks the reading taken when the
// source connects rather than in response to a scroll.
type sample struct {
	pos     Position
	kickoff bool
}

// newRawSource wraps the target's native scroll notifications into one
// multicast stream of samples. Connecting emits the current position
// immediately; every later notification emits the position as read at
// delivery time. The native listener is attached while at least one
// subscriber is connected.
func newRawSource(r *resolver, log *logging.Logger) *Stream[sample] {
	return Share(NewStream(func(emit func(sample)) func() {
		remove := r.source.AddScrollListener(func() {
			emit(sample{pos: r.position()})
		})
		log.Debug("scroll listener attached")

		emit(sample{pos: r.position(), kickoff: true})

		return func() {
			remove()
			log.Debug("scroll listener detached")
		}
	}))
}

// positions drops the kickoff marker.
func positions(samples *Stream[sample]) *Stream[Position] {
	return Share(Map(samples, func(s sample) Position { return s.pos }))
}

// occurrences keeps only samples caused by a scroll.
func occurrences(samples *Stream[sample]) *Stream[Position] {
	scrolled := Filter(samples, func(s sample) bool { return !s.kickoff })
	return Map(scrolled, func(s sample) Position { return s.pos })
}
