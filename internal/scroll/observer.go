package scroll

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/scrollwatch/internal/logging"
)

// DefaultThrottle is the coalescing window used by Scroll, ScrollX,
// ScrollY and ScrollEnd unless WithThrottle says otherwise.
const DefaultThrottle = 90 * time.Millisecond

// Option configures an Observer.
type Option func(*observerConfig)

type observerConfig struct {
	throttle time.Duration
	clock    Clock
	logger   *logging.Logger
}

func defaultObserverConfig() observerConfig {
	return observerConfig{
		throttle: DefaultThrottle,
		logger:   logging.Discard(),
	}
}

// WithThrottle sets the default coalescing window. Zero (or a negative
// value) disables coalescing: Scroll, ScrollX and ScrollY deliver every
// sample and ScrollEnd fires on the next clock turn after movement stops.
func WithThrottle(d time.Duration) Option {
	return func(c *observerConfig) {
		c.throttle = max(d, 0)
	}
}

// WithClock sets the clock that drives throttle and debounce windows. It
// is required; its callbacks must arrive on the goroutine that delivers
// scroll notifications.
func WithClock(clock Clock) Option {
	return func(c *observerConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the logger for lifecycle messages.
func WithLogger(l *logging.Logger) Option {
	return func(c *observerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Observer derives semantic scroll streams from one target.
//
// All returned streams are multicast and never complete; an Observer holds
// no resources of its own while nothing is subscribed. Subscribing,
// unsubscribing, scroll notifications and clock callbacks must all happen
// on one goroutine.
type Observer struct {
	id       string
	target   Target
	throttle time.Duration
	clock    Clock
	log      *logging.Logger

	res     *resolver
	samples *Stream[sample]
	raw     *Stream[Position]

	mu     sync.Mutex
	both   map[time.Duration]*Stream[Position]
	xCache map[time.Duration]*Stream[int]
	yCache map[time.Duration]*Stream[int]

	scrollStart *Stream[Position]
	scrollEnd   *Stream[Position]

	direction  *Stream[Direction]
	directionX *Stream[Direction]
	directionY *Stream[Direction]

	scrollingDown  *Stream[int]
	scrollingUp    *Stream[int]
	scrollingLeft  *Stream[int]
	scrollingRight *Stream[int]

	phaseX *Stream[Phase]
	phaseY *Stream[Phase]

	remaining  *Stream[RemainingPosition]
	remainingX *Stream[int]
	remainingY *Stream[int]
}

// NewObserver creates an observer for target, which must be a Document or
// an Element. A clock must be supplied with WithClock.
func NewObserver(target Target, opts ...Option) (*Observer, error) {
	cfg := defaultObserverConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	res, err := newResolver(target)
	if err != nil {
		return nil, err
	}
	if cfg.clock == nil {
		return nil, ErrNoClock
	}

	o := &Observer{
		id:       uuid.New().String(),
		target:   target,
		throttle: cfg.throttle,
		clock:    cfg.clock,
		res:      res,
		both:     make(map[time.Duration]*Stream[Position]),
		xCache:   make(map[time.Duration]*Stream[int]),
		yCache:   make(map[time.Duration]*Stream[int]),
	}
	o.log = cfg.logger.WithComponent("scroll").WithField("observer", o.id)
	o.samples = newRawSource(res, o.log)
	o.raw = positions(o.samples)
	o.build()

	o.log.Debug("observer created for %T, throttle %s", target, o.throttle)
	return o, nil
}

// build wires the derived stream graph. Nothing connects until subscribed.
func (o *Observer) build() {
	o.scrollEnd = Share(Debounce(o.raw, o.clock, o.throttle))
	o.scrollStart = Share(movementStarts(occurrences(o.samples), o.scrollEnd))

	o.directionY = Share(directionChanges(o.ScrollY(), verticalDirection))
	o.directionX = Share(directionChanges(o.ScrollX(), horizontalDirection))
	o.direction = Share(Merge(o.directionX, o.directionY))

	o.scrollingDown = Share(gate(o.directionY, DirectionBottom, o.ScrollY()))
	o.scrollingUp = Share(gate(o.directionY, DirectionTop, o.ScrollY()))
	o.scrollingLeft = Share(gate(o.directionX, DirectionLeft, o.ScrollX()))
	o.scrollingRight = Share(gate(o.directionX, DirectionRight, o.ScrollX()))

	o.phaseY = Share(Distinct(Map(o.raw, func(p Position) Phase { return o.res.phaseY(p.Top) })))
	o.phaseX = Share(Distinct(Map(o.raw, func(p Position) Phase { return o.res.phaseX(p.Left) })))

	o.remaining = Share(Map(o.raw, o.res.remaining))
	o.remainingY = Share(Distinct(Map(o.remaining, func(r RemainingPosition) int { return r.Bottom })))
	o.remainingX = Share(Distinct(Map(o.remaining, func(r RemainingPosition) int { return r.Right })))
}

// activity is a moving or idle signal used to detect movement starts.
type activity struct {
	pos    Position
	moving bool
}

// movementStarts emits a position whenever the surface goes from idle to
// moving. scrolled carries scroll occurrences only; settled marks the
// return to idle.
func movementStarts(scrolled, settled *Stream[Position]) *Stream[Position] {
	moving := Map(scrolled, func(p Position) activity { return activity{pos: p, moving: true} })
	idle := Map(settled, func(p Position) activity { return activity{pos: p} })

	transitions := DistinctFunc(Merge(moving, idle), func(prev, next activity) bool {
		return prev.moving && next.moving
	})
	starts := Filter(transitions, func(a activity) bool { return a.moving })
	return Map(starts, func(a activity) Position { return a.pos })
}

// directionChanges compares consecutive distinct axis samples and emits
// the direction only when it differs from the last one emitted.
func directionChanges(axis *Stream[int], compare func(prev, next int) Direction) *Stream[Direction] {
	dirs := Map(Pairwise(axis), func(p Pair[int]) Direction { return compare(p.Prev, p.Next) })
	return Distinct(dirs)
}

// gate re-broadcasts axis while the latest direction equals want.
func gate(directions *Stream[Direction], want Direction, axis *Stream[int]) *Stream[int] {
	return SwitchMap(directions, func(d Direction) *Stream[int] {
		if d == want {
			return axis
		}
		return nil
	})
}

// ID returns the observer's unique identifier.
func (o *Observer) ID() string { return o.id }

// Target returns the observed target.
func (o *Observer) Target() Target { return o.target }

// Throttle returns the default coalescing window.
func (o *Observer) Throttle() time.Duration { return o.throttle }

// Position reads the current offset without subscribing.
func (o *Observer) Position() Position { return o.res.position() }

// RemainingPosition reads the current remaining distance without
// subscribing.
func (o *Observer) RemainingPosition() RemainingPosition {
	return o.res.remaining(o.res.position())
}

// Listen returns positions coalesced to at most one per window d, using
// the first sample of each window. d <= 0 returns the uncoalesced stream.
// Equal windows share one stream.
func (o *Observer) Listen(d time.Duration) *Stream[Position] {
	if d <= 0 {
		return o.raw
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if s, ok := o.both[d]; ok {
		return s
	}
	s := Share(Throttle(o.raw, o.clock, d))
	o.both[d] = s
	o.log.Debug("coalesced stream created for %s", d)
	return s
}

// ListenX returns the horizontal offset of Listen(d), skipping samples
// that did not move that axis.
func (o *Observer) ListenX(d time.Duration) *Stream[int] {
	return o.listenAxis(d, o.xCache, func(p Position) int { return p.Left })
}

// ListenY returns the vertical offset of Listen(d), skipping samples that
// did not move that axis.
func (o *Observer) ListenY(d time.Duration) *Stream[int] {
	return o.listenAxis(d, o.yCache, func(p Position) int { return p.Top })
}

func (o *Observer) listenAxis(d time.Duration, cache map[time.Duration]*Stream[int], project func(Position) int) *Stream[int] {
	base := o.Listen(d)
	if d <= 0 {
		return Share(Distinct(Map(base, project)))
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if s, ok := cache[d]; ok {
		return s
	}
	s := Share(Distinct(Map(base, project)))
	cache[d] = s
	return s
}

// Scroll is Listen at the default window.
func (o *Observer) Scroll() *Stream[Position] { return o.Listen(o.throttle) }

// ScrollX is ListenX at the default window.
func (o *Observer) ScrollX() *Stream[int] { return o.ListenX(o.throttle) }

// ScrollY is ListenY at the default window.
func (o *Observer) ScrollY() *Stream[int] { return o.ListenY(o.throttle) }

// ScrollStart emits the position when scrolling begins after a settle.
func (o *Observer) ScrollStart() *Stream[Position] { return o.scrollStart }

// ScrollEnd emits the last position once no scroll has occurred for the
// default window.
func (o *Observer) ScrollEnd() *Stream[Position] { return o.scrollEnd }

// ScrollDirectionChange emits horizontal and vertical direction changes.
func (o *Observer) ScrollDirectionChange() *Stream[Direction] { return o.direction }

// ScrollXDirectionChange emits DirectionLeft or DirectionRight on change.
func (o *Observer) ScrollXDirectionChange() *Stream[Direction] { return o.directionX }

// ScrollYDirectionChange emits DirectionTop or DirectionBottom on change.
func (o *Observer) ScrollYDirectionChange() *Stream[Direction] { return o.directionY }

// ScrollingDown emits ScrollY values while the vertical direction is
// DirectionBottom. The sample that announces a new direction is not
// re-broadcast.
func (o *Observer) ScrollingDown() *Stream[int] { return o.scrollingDown }

// ScrollingUp emits ScrollY values while the vertical direction is
// DirectionTop.
func (o *Observer) ScrollingUp() *Stream[int] { return o.scrollingUp }

// ScrollingLeft emits ScrollX values while the horizontal direction is
// DirectionLeft.
func (o *Observer) ScrollingLeft() *Stream[int] { return o.scrollingLeft }

// ScrollingRight emits ScrollX values while the horizontal direction is
// DirectionRight.
func (o *Observer) ScrollingRight() *Stream[int] { return o.scrollingRight }

// ScrollXPhase emits the horizontal phase on change, from uncoalesced
// samples.
func (o *Observer) ScrollXPhase() *Stream[Phase] { return o.phaseX }

// ScrollYPhase emits the vertical phase on change, from uncoalesced
// samples.
func (o *Observer) ScrollYPhase() *Stream[Phase] { return o.phaseY }

// Remaining emits the remaining distance for every sample.
func (o *Observer) Remaining() *Stream[RemainingPosition] { return o.remaining }

// RemainingX emits the remaining horizontal distance when it changes.
func (o *Observer) RemainingX() *Stream[int] { return o.remainingX }

// RemainingY emits the remaining vertical distance when it changes.
func (o *Observer) RemainingY() *Stream[int] { return o.remainingY }
