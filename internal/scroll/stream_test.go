package scroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subject is a hot test source.
type subject[T any] struct {
	emitters map[int]func(T)
	next     int
	connects int
}

func newSubject[T any]() (*subject[T], *Stream[T]) {
	s := &subject[T]{emitters: make(map[int]func(T))}
	return s, NewStream(func(emit func(T)) func() {
		id := s.next
		s.next++
		s.emitters[id] = emit
		s.connects++
		return func() { delete(s.emitters, id) }
	})
}

func (s *subject[T]) push(vs ...T) {
	for _, v := range vs {
		for i := 0; i < s.next; i++ {
			if emit, ok := s.emitters[i]; ok {
				emit(v)
			}
		}
	}
}

func TestSubscription_Unsubscribe(t *testing.T) {
	src, s := newSubject[int]()
	r := record(s)

	src.push(1, 2)
	r.sub.Unsubscribe()
	r.sub.Unsubscribe()
	src.push(3)

	assert.Equal(t, []int{1, 2}, r.values)
	assert.True(t, r.sub.Closed())
	assert.Empty(t, src.emitters)
	assert.NotEmpty(t, r.sub.ID())
}

func TestSubscription_UnsubscribeDuringSyncEmission(t *testing.T) {
	released := false
	s := NewStream(func(emit func(int)) func() {
		emit(1)
		emit(2)
		return func() { released = true }
	})

	var got []int
	var sub *Subscription
	sub = s.Subscribe(func(v int) {
		got = append(got, v)
		if sub != nil {
			sub.Unsubscribe()
		}
	})
	sub.Unsubscribe()

	// Both values arrive because sub was not assigned yet during connect.
	assert.Equal(t, []int{1, 2}, got)
	assert.True(t, released)
}

func TestShare_RefCounting(t *testing.T) {
	src, s := newSubject[int]()
	shared := Share(s)

	assert.Equal(t, 0, shared.Subscribers())
	assert.Equal(t, -1, s.Subscribers())

	a := record(shared)
	b := record(shared)
	assert.Equal(t, 1, src.connects)
	assert.Equal(t, 2, shared.Subscribers())

	src.push(1)
	a.sub.Unsubscribe()
	src.push(2)
	assert.Len(t, src.emitters, 1)

	b.sub.Unsubscribe()
	assert.Empty(t, src.emitters)

	assert.Equal(t, []int{1}, a.values)
	assert.Equal(t, []int{1, 2}, b.values)

	// Reconnects after a full release.
	c := record(shared)
	assert.Equal(t, 2, src.connects)
	c.sub.Unsubscribe()
}

func TestShare_LateSubscriberMissesInFlightValue(t *testing.T) {
	src, s := newSubject[int]()
	shared := Share(s)

	var late *recorder[int]
	shared.Subscribe(func(v int) {
		if late == nil {
			late = record(shared)
		}
	})

	src.push(1, 2)
	require.NotNil(t, late)
	assert.Equal(t, []int{2}, late.values)
}

func TestShare_RemovedSubscriberSkippedInFlight(t *testing.T) {
	src, s := newSubject[int]()
	shared := Share(s)

	var second *recorder[int]
	shared.Subscribe(func(int) {
		second.sub.Unsubscribe()
	})
	second = record(shared)

	src.push(1)
	assert.Empty(t, second.values)
}

func TestShare_FirstValueDuringConnect(t *testing.T) {
	connects, releases := 0, 0
	s := Share(NewStream(func(emit func(int)) func() {
		connects++
		emit(7)
		return func() { releases++ }
	}))

	v, ok := <-First(s)
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, connects)
	assert.Equal(t, 1, releases)
	assert.Equal(t, 0, s.Subscribers())
}

func TestMapFilter(t *testing.T) {
	src, s := newSubject[int]()
	r := record(Map(Filter(s, func(v int) bool { return v%2 == 0 }), func(v int) string {
		return string(rune('a' + v))
	}))

	src.push(0, 1, 2, 3, 4)
	assert.Equal(t, []string{"a", "c", "e"}, r.values)
}

func TestDistinct(t *testing.T) {
	src, s := newSubject[int]()
	r := record(Distinct(s))

	src.push(1, 1, 2, 2, 2, 1, 3, 3)
	assert.Equal(t, []int{1, 2, 1, 3}, r.values)
}

func TestPairwise(t *testing.T) {
	src, s := newSubject[int]()
	r := record(Pairwise(s))

	src.push(1)
	assert.Empty(t, r.values)

	src.push(2, 5)
	assert.Equal(t, []Pair[int]{{Prev: 1, Next: 2}, {Prev: 2, Next: 5}}, r.values)
}

func TestMerge(t *testing.T) {
	srcA, a := newSubject[int]()
	srcB, b := newSubject[int]()
	r := record(Merge(a, b))

	srcA.push(1)
	srcB.push(2)
	srcA.push(3)
	assert.Equal(t, []int{1, 2, 3}, r.values)

	r.sub.Unsubscribe()
	assert.Empty(t, srcA.emitters)
	assert.Empty(t, srcB.emitters)
}

func TestSwitchMap(t *testing.T) {
	outerSrc, outer := newSubject[string]()
	innerSrc, inner := newSubject[int]()

	r := record(SwitchMap(outer, func(v string) *Stream[int] {
		if v == "on" {
			return inner
		}
		return nil
	}))

	innerSrc.push(1)
	outerSrc.push("on")
	innerSrc.push(2, 3)
	outerSrc.push("off")
	innerSrc.push(4)
	outerSrc.push("on")
	innerSrc.push(5)

	assert.Equal(t, []int{2, 3, 5}, r.values)

	r.sub.Unsubscribe()
	assert.Empty(t, innerSrc.emitters)
	assert.Empty(t, outerSrc.emitters)
}

func TestThrottle_LeadingEdge(t *testing.T) {
	clock := NewManualClock(epoch)
	src, s := newSubject[int]()

	var times []time.Time
	var got []int
	s2 := Throttle(s, clock, 100*time.Millisecond)
	s2.Subscribe(func(v int) {
		got = append(got, v)
		times = append(times, clock.Now())
	})

	for i := 0; i < 30; i++ {
		src.push(i)
		clock.Advance(15 * time.Millisecond)
	}

	require.NotEmpty(t, got)
	assert.Equal(t, 0, got[0], "first sample passes immediately")
	for i := 1; i < len(times); i++ {
		assert.GreaterOrEqual(t, times[i].Sub(times[i-1]), 100*time.Millisecond)
	}
	// 30 samples over 450ms with 100ms windows opened at 0,105,210,315,420.
	assert.Equal(t, []int{0, 7, 14, 21, 28}, got)
}

func TestThrottle_ReleaseStopsWindow(t *testing.T) {
	clock := NewManualClock(epoch)
	src, s := newSubject[int]()

	sub := Throttle(s, clock, time.Second).Subscribe(func(int) {})
	src.push(1)
	assert.Equal(t, 1, clock.Pending())

	sub.Unsubscribe()
	assert.Equal(t, 0, clock.Pending())
}

func TestDebounce_TrailingEdge(t *testing.T) {
	clock := NewManualClock(epoch)
	src, s := newSubject[int]()
	r := record(Debounce(s, clock, 90*time.Millisecond))

	for i := 1; i <= 5; i++ {
		src.push(i)
		clock.Advance(50 * time.Millisecond)
	}
	assert.Empty(t, r.values)

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, []int{5}, r.values)

	src.push(6)
	clock.Advance(89 * time.Millisecond)
	assert.Equal(t, []int{5}, r.values)
	clock.Advance(time.Millisecond)
	assert.Equal(t, []int{5, 6}, r.values)
}

func TestFirst(t *testing.T) {
	src, s := newSubject[int]()
	ch := First(s)

	select {
	case <-ch:
		t.Fatal("First resolved before any value")
	default:
	}

	src.push(4, 5)
	v, ok := <-ch
	assert.True(t, ok)
	assert.Equal(t, 4, v)
	_, ok = <-ch
	assert.False(t, ok)
	assert.Empty(t, src.emitters)
}
