package scroll

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Stream is a lazily connected push stream. Nothing upstream is attached
// until the first Subscribe; operators built on a Stream connect once per
// subscriber unless the stream is wrapped with Share.
type Stream[T any] struct {
	connect func(emit func(T)) (disconnect func())
	count   func() int
}

// NewStream creates a stream from a connect function. connect is called
// once per subscriber with the function that delivers values to it and
// returns the function that releases whatever connect attached.
func NewStream[T any](connect func(emit func(T)) func()) *Stream[T] {
	return &Stream[T]{connect: connect}
}

// Subscribe attaches fn and returns the handle that detaches it.
// Values emitted synchronously during Subscribe are delivered before it
// returns.
func (s *Stream[T]) Subscribe(fn func(T)) *Subscription {
	sub := newSubscription()
	disconnect := s.connect(func(v T) {
		if !sub.Closed() {
			fn(v)
		}
	})
	sub.setTeardown(disconnect)
	return sub
}

// Subscription is one subscriber's attachment to a Stream.
type Subscription struct {
	id       string
	closed   atomic.Bool
	teardown func()
}

func newSubscription() *Subscription {
	return &Subscription{id: uuid.New().String()}
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Closed reports whether Unsubscribe has been called.
func (s *Subscription) Closed() bool {
	return s.closed.Load()
}

// Unsubscribe detaches the subscriber. It is safe to call more than once
// and from inside the subscriber's own callback.
func (s *Subscription) Unsubscribe() {
	if s.closed.Swap(true) {
		return
	}
	if td := s.teardown; td != nil {
		s.teardown = nil
		td()
	}
}

// setTeardown installs the release function, running it at once if the
// subscriber already left while connecting.
func (s *Subscription) setTeardown(fn func()) {
	if fn == nil {
		return
	}
	if s.Closed() {
		fn()
		return
	}
	s.teardown = fn
}

// Share turns s into a multicast stream. The first subscriber connects s,
// later subscribers join that single connection, and the connection is
// released when the last subscriber leaves. A subscriber added while a
// value is being delivered does not receive that value.
func Share[T any](s *Stream[T]) *Stream[T] {
	sh := &shared[T]{source: s}
	return &Stream[T]{
		connect: sh.add,
		count:   func() int { return len(sh.sinks) },
	}
}

// Subscribers returns the number of subscribers attached to a stream made
// by Share, or -1 for a stream that is not multicast.
func (s *Stream[T]) Subscribers() int {
	if s.count == nil {
		return -1
	}
	return s.count()
}

type sink[T any] struct {
	emit    func(T)
	removed bool
}

type shared[T any] struct {
	source     *Stream[T]
	sinks      []*sink[T]
	upstream   *Subscription
	connecting bool
}

func (sh *shared[T]) add(emit func(T)) func() {
	o := &sink[T]{emit: emit}
	sh.sinks = append(sh.sinks, o)

	if sh.upstream == nil && !sh.connecting {
		sh.connecting = true
		up := sh.source.Subscribe(sh.next)
		sh.connecting = false
		if len(sh.sinks) == 0 {
			up.Unsubscribe()
		} else {
			sh.upstream = up
		}
	}

	return func() { sh.remove(o) }
}

func (sh *shared[T]) next(v T) {
	snapshot := make([]*sink[T], len(sh.sinks))
	copy(snapshot, sh.sinks)
	for _, o := range snapshot {
		if !o.removed {
			o.emit(v)
		}
	}
}

func (sh *shared[T]) remove(o *sink[T]) {
	if o.removed {
		return
	}
	o.removed = true
	for i, s := range sh.sinks {
		if s == o {
			sh.sinks = append(sh.sinks[:i], sh.sinks[i+1:]...)
			break
		}
	}
	if len(sh.sinks) == 0 && sh.upstream != nil {
		up := sh.upstream
		sh.upstream = nil
		up.Unsubscribe()
	}
}
