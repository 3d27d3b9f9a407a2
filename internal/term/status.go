package term

import (
	"fmt"

	"github.com/dshills/scrollwatch/internal/scroll"
)

// status is what the bottom line shows. Stream subscriptions and the App
// write it, always from the event loop.
type status struct {
	pos       scroll.Position
	phase     scroll.Phase
	direction scroll.Direction
	remaining scroll.RemainingPosition
	moving    bool
	settles   int
	percent   int
	message   string
}

func (s *status) subscribe(obs *scroll.Observer) []*scroll.Subscription {
	return []*scroll.Subscription{
		obs.Scroll().Subscribe(func(p scroll.Position) { s.pos = p }),
		obs.ScrollYPhase().Subscribe(func(p scroll.Phase) { s.phase = p }),
		obs.ScrollDirectionChange().Subscribe(func(d scroll.Direction) { s.direction = d }),
		obs.Remaining().Subscribe(func(r scroll.RemainingPosition) { s.remaining = r }),
		obs.ScrollStart().Subscribe(func(scroll.Position) { s.moving = true }),
		obs.ScrollEnd().Subscribe(func(p scroll.Position) {
			s.moving = false
			s.pos = p
			s.settles++
		}),
	}
}

func (s *status) String() string {
	state := "idle"
	if s.moving {
		state = "scrolling"
	}
	line := fmt.Sprintf(" %s  %s  %s  %s  rem %s  ends %d  %d%%",
		state, s.pos, s.phase, s.direction, s.remaining, s.settles, s.percent)
	if s.message != "" {
		line += "  | " + s.message
	}
	return line
}
