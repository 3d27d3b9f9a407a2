package scroll

import "time"

// Map transforms every value of s with fn.
func Map[T, U any](s *Stream[T], fn func(T) U) *Stream[U] {
	return NewStream(func(emit func(U)) func() {
		sub := s.Subscribe(func(v T) {
			emit(fn(v))
		})
		return sub.Unsubscribe
	})
}

// Filter passes only the values for which keep returns true.
func Filter[T any](s *Stream[T], keep func(T) bool) *Stream[T] {
	return NewStream(func(emit func(T)) func() {
		sub := s.Subscribe(func(v T) {
			if keep(v) {
				emit(v)
			}
		})
		return sub.Unsubscribe
	})
}

// Distinct suppresses values equal to the previously emitted one.
func Distinct[T comparable](s *Stream[T]) *Stream[T] {
	return DistinctFunc(s, func(a, b T) bool { return a == b })
}

// DistinctFunc suppresses a value when equal reports it matches the last
// value that was let through.
func DistinctFunc[T any](s *Stream[T], equal func(prev, next T) bool) *Stream[T] {
	return NewStream(func(emit func(T)) func() {
		var (
			last T
			seen bool
		)
		sub := s.Subscribe(func(v T) {
			if seen && equal(last, v) {
				return
			}
			last, seen = v, true
			emit(v)
		})
		return sub.Unsubscribe
	})
}

// Pair is two consecutive values of a stream.
type Pair[T any] struct {
	Prev T
	Next T
}

// Pairwise emits each value together with its predecessor, starting from
// the second value.
func Pairwise[T any](s *Stream[T]) *Stream[Pair[T]] {
	return NewStream(func(emit func(Pair[T])) func() {
		var (
			prev T
			seen bool
		)
		sub := s.Subscribe(func(v T) {
			if seen {
				p := Pair[T]{Prev: prev, Next: v}
				prev = v
				emit(p)
				return
			}
			prev, seen = v, true
		})
		return sub.Unsubscribe
	})
}

// Merge interleaves the values of all inputs in arrival order.
func Merge[T any](streams ...*Stream[T]) *Stream[T] {
	return NewStream(func(emit func(T)) func() {
		subs := make([]*Subscription, 0, len(streams))
		for _, s := range streams {
			subs = append(subs, s.Subscribe(emit))
		}
		return func() {
			for _, sub := range subs {
				sub.Unsubscribe()
			}
		}
	})
}

// SwitchMap subscribes to the stream project returns for each outer value,
// dropping the previous inner subscription first. A nil inner stream
// silences the output until the next outer value.
func SwitchMap[T, U any](s *Stream[T], project func(T) *Stream[U]) *Stream[U] {
	return NewStream(func(emit func(U)) func() {
		var inner *Subscription
		outer := s.Subscribe(func(v T) {
			if inner != nil {
				inner.Unsubscribe()
				inner = nil
			}
			if next := project(v); next != nil {
				inner = next.Subscribe(emit)
			}
		})
		return func() {
			outer.Unsubscribe()
			if inner != nil {
				inner.Unsubscribe()
				inner = nil
			}
		}
	})
}

// Throttle lets the first value of each window of length d through and
// drops the rest of the window. The window opens on the emitted value.
func Throttle[T any](s *Stream[T], clock Clock, d time.Duration) *Stream[T] {
	return NewStream(func(emit func(T)) func() {
		var window Timer
		sub := s.Subscribe(func(v T) {
			if window != nil {
				return
			}
			window = clock.AfterFunc(d, func() { window = nil })
			emit(v)
		})
		return func() {
			sub.Unsubscribe()
			if window != nil {
				window.Stop()
				window = nil
			}
		}
	})
}

// Debounce emits the latest value once d has passed without another one.
// Every new value restarts the quiet window.
func Debounce[T any](s *Stream[T], clock Clock, d time.Duration) *Stream[T] {
	return NewStream(func(emit func(T)) func() {
		var (
			pending Timer
			latest  T
		)
		sub := s.Subscribe(func(v T) {
			latest = v
			if pending != nil {
				pending.Stop()
			}
			pending = clock.AfterFunc(d, func() {
				pending = nil
				emit(latest)
			})
		})
		return func() {
			sub.Unsubscribe()
			if pending != nil {
				pending.Stop()
				pending = nil
			}
		}
	})
}

// First subscribes to s and returns a channel that receives the first
// value, after which the subscription is released. The channel is closed
// after that value; it never receives anything if s never emits.
func First[T any](s *Stream[T]) <-chan T {
	ch := make(chan T, 1)
	var (
		sub  *Subscription
		done bool
	)
	sub = s.Subscribe(func(v T) {
		if done {
			return
		}
		done = true
		ch <- v
		close(ch)
		if sub != nil {
			sub.Unsubscribe()
		}
	})
	if done {
		sub.Unsubscribe()
	}
	return ch
}
