package manager

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/dshills/scrollwatch/internal/logging"
	"github.com/dshills/scrollwatch/internal/scroll"
)

// Scroller issues native scroll commands on the root surface.
type Scroller interface {
	ScrollTo(top, left int, smooth bool)
	ScrollBy(deltaTop, deltaLeft int, smooth bool)
}

// Rect is a box relative to the visible part of the root surface.
type Rect struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// Bounded is anything that can report where it sits relative to the
// visible part of the root surface.
type Bounded interface {
	BoundingRect() Rect
}

// ScrollToElementOptions configures ScrollToElement.
type ScrollToElementOptions struct {
	// Animate requests a smooth scroll.
	Animate bool
	// Top and Left are added to the element offset.
	Top  int
	Left int
}

// DefaultScrollToElementOptions returns animated scrolling with no extra
// offset.
func DefaultScrollToElementOptions() ScrollToElementOptions {
	return ScrollToElementOptions{Animate: true}
}

// Manager hands out one Observer per scroll target and scrolls the root
// surface on request.
//
// Observers are held until Forget is called for their target. Scroll
// commands must be issued on the goroutine that delivers scroll
// notifications.
type Manager struct {
	mu        sync.Mutex
	observers map[scroll.Target]*scroll.Observer

	root     scroll.Document
	scroller Scroller
	opts     []scroll.Option
	log      *logging.Logger
}

// New creates a manager whose root observer watches root and whose scroll
// commands go to scroller. The options apply to every observer the manager
// creates and must include scroll.WithClock.
func New(root scroll.Document, scroller Scroller, log *logging.Logger, opts ...scroll.Option) (*Manager, error) {
	if root == nil || scroller == nil {
		return nil, ErrNilRoot
	}
	if log == nil {
		log = logging.Discard()
	}
	log = log.WithComponent("manager")

	m := &Manager{
		observers: make(map[scroll.Target]*scroll.Observer),
		root:      root,
		scroller:  scroller,
		opts:      append([]scroll.Option{scroll.WithLogger(log)}, opts...),
		log:       log,
	}
	if _, err := m.Observe(root); err != nil {
		return nil, fmt.Errorf("root observer: %w", err)
	}
	return m, nil
}

// Observe returns the observer for target, creating it on first use.
func (m *Manager) Observe(target scroll.Target) (*scroll.Observer, error) {
	if target == nil {
		return nil, scroll.ErrNilTarget
	}
	if !reflect.TypeOf(target).Comparable() {
		return nil, fmt.Errorf("%w: %T", ErrUncomparableTarget, target)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if obs, ok := m.observers[target]; ok {
		return obs, nil
	}

	obs, err := scroll.NewObserver(target, m.opts...)
	if err != nil {
		return nil, err
	}
	m.observers[target] = obs
	m.log.Debug("observer %s created for %T", obs.ID(), target)
	return obs, nil
}

// Root returns the whole-document observer.
func (m *Manager) Root() *scroll.Observer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.observers[m.root]
}

// Forget drops the observer for target. Streams already handed out keep
// working; the next Observe builds a fresh observer. The root observer
// cannot be forgotten.
func (m *Manager) Forget(target scroll.Target) bool {
	if target == nil || !reflect.TypeOf(target).Comparable() {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if target == scroll.Target(m.root) {
		return false
	}
	obs, ok := m.observers[target]
	if !ok {
		return false
	}
	delete(m.observers, target)
	m.log.Debug("observer %s forgotten", obs.ID())
	return true
}

// Len returns the number of registered observers, the root included.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.observers)
}

// ScrollToElement scrolls the root surface so that el's top-left corner,
// shifted by the option offsets, becomes the first visible cell.
//
// The returned channel yields the position from the next root ScrollEnd
// and is then closed. If the root never settles, it never yields.
func (m *Manager) ScrollToElement(el Bounded, opts ScrollToElementOptions) (<-chan scroll.Position, error) {
	if el == nil {
		return nil, ErrNilElement
	}

	rect := el.BoundingRect()
	settled := scroll.First(m.Root().ScrollEnd())

	m.log.Debug("scroll to element: by (%d, %d) animate=%t", rect.Top+opts.Top, rect.Left+opts.Left, opts.Animate)
	m.scroller.ScrollBy(rect.Top+opts.Top, rect.Left+opts.Left, opts.Animate)
	return settled, nil
}

// ScrollTop scrolls the root surface to its origin. The returned channel
// follows the same contract as ScrollToElement.
func (m *Manager) ScrollTop(animate bool) <-chan scroll.Position {
	settled := scroll.First(m.Root().ScrollEnd())

	m.log.Debug("scroll to top animate=%t", animate)
	m.scroller.ScrollTo(0, 0, animate)
	return settled
}
