package term

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/scrollwatch/internal/config"
	"github.com/dshills/scrollwatch/internal/logging"
	"github.com/dshills/scrollwatch/internal/manager"
	"github.com/dshills/scrollwatch/internal/scroll"
	"github.com/dshills/scrollwatch/internal/viewport"
)

// statusRows is the number of rows reserved below the text.
const statusRows = 1

// frameInterval paces smooth scroll animation.
const frameInterval = 16 * time.Millisecond

// Option configures an App.
type Option func(*App)

// WithClock overrides the loop clock, for tests.
func WithClock(clock scroll.Clock) Option {
	return func(a *App) {
		a.clock = clock
	}
}

// WithLogger sets the application logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// pendingSettle is an outstanding ScrollToElement or ScrollTop result.
type pendingSettle struct {
	label string
	ch    <-chan scroll.Position
}

// App is the interactive pager: it renders content, turns input into
// scroll commands and shows the derived scroll state.
//
// Everything except Post and Quit must be called on the event loop.
type App struct {
	screen  tcell.Screen
	content *Content
	cfg     *config.Config
	clock   scroll.Clock
	log     *logging.Logger

	vp  *viewport.Viewport
	doc *Document
	mgr *manager.Manager

	status  status
	subs    []*scroll.Subscription
	pending []pendingSettle
	mark    int
	hasMark bool
	quit    bool
}

// NewApp builds the pager for an initialized screen.
func NewApp(screen tcell.Screen, content *Content, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		screen:  screen,
		content: content,
		cfg:     cfg,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.clock == nil {
		a.clock = NewClock(screen)
	}
	a.log = a.log.WithComponent("term")

	w, h := screen.Size()
	a.vp = viewport.New(w, h-statusRows)
	a.vp.SetContentSize(content.Width(), content.Len())
	a.vp.SetSmoothScroll(cfg.Scroll.Smooth)
	a.doc = NewDocument(a.vp, cfg.Host())

	mgr, err := manager.New(a.doc, a.vp, a.log,
		scroll.WithClock(a.clock),
		scroll.WithThrottle(cfg.Throttle()))
	if err != nil {
		return nil, fmt.Errorf("creating scroll manager: %w", err)
	}
	a.mgr = mgr
	a.subs = a.status.subscribe(mgr.Root())

	a.log.Info("document ready: %d lines, %d columns, host %s", content.Len(), content.Width(), cfg.Host())
	return a, nil
}

// Viewport returns the document viewport.
func (a *App) Viewport() *viewport.Viewport { return a.vp }

// Manager returns the scroll manager.
func (a *App) Manager() *manager.Manager { return a.mgr }

// Post runs fn on the event loop. Safe for concurrent use.
func (a *App) Post(fn func()) bool {
	return post(a.screen, fn)
}

// Quit asks the event loop to stop. Safe for concurrent use.
func (a *App) Quit() {
	a.screen.PostEventWait(tcell.NewEventInterrupt(func() { a.quit = true }))
}

// ApplyConfig switches to a reloaded configuration. Scroll steps and
// smoothing change immediately; the root observer keeps its cadence.
func (a *App) ApplyConfig(cfg *config.Config) {
	if cfg.Throttle() != a.cfg.Throttle() || cfg.Host() != a.cfg.Host() {
		a.log.Info("throttle and host changes apply to observers created from now on")
	}
	a.cfg = cfg
	if !cfg.Scroll.Smooth {
		a.finishAnimation()
	}
	a.vp.SetSmoothScroll(cfg.Scroll.Smooth)
	a.status.message = "config reloaded"
	a.Draw()
}

// Close releases the status subscriptions.
func (a *App) Close() {
	for _, sub := range a.subs {
		sub.Unsubscribe()
	}
	a.subs = nil
}

// Run polls screen events until the user quits or the screen is finalized.
func (a *App) Run() error {
	done := make(chan struct{})
	defer close(done)
	go a.animate(done)

	a.Draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !a.HandleEvent(ev) {
			a.log.Info("quit")
			return nil
		}
	}
}

// animate posts animation frames while the viewport is animating.
func (a *App) animate(done <-chan struct{}) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			if !a.vp.IsAnimating() {
				last = now
				continue
			}
			dt := now.Sub(last).Seconds()
			last = now
			a.Post(func() {
				if a.vp.Update(dt) {
					a.Draw()
				}
			})
		}
	}
}

// HandleEvent processes one event and redraws. It returns false once the
// app should exit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventInterrupt:
		if fn, ok := e.Data().(func()); ok {
			fn()
		}
	case *tcell.EventResize:
		w, h := e.Size()
		a.finishAnimation()
		a.vp.Resize(w, h-statusRows)
		a.screen.Sync()
	case *tcell.EventMouse:
		a.handleMouse(e)
	case *tcell.EventKey:
		a.handleKey(e)
	}

	a.drainSettled()
	if a.quit {
		return false
	}
	a.Draw()
	return true
}

func (a *App) step(mod tcell.ModMask) int {
	if mod&tcell.ModShift != 0 {
		return a.cfg.Scroll.ShiftLines
	}
	return a.cfg.Scroll.Lines
}

func (a *App) handleMouse(e *tcell.EventMouse) {
	if w, ok := parseWheel(e, a.cfg.Scroll.Lines, a.cfg.Scroll.ShiftLines); ok {
		a.vp.ScrollBy(w.Lines, w.Cols, false)
	}
}

func (a *App) handleKey(e *tcell.EventKey) {
	smooth := a.cfg.Scroll.Smooth
	n := a.step(e.Modifiers())

	switch e.Key() {
	case tcell.KeyUp:
		a.vp.ScrollBy(-n, 0, false)
	case tcell.KeyDown:
		a.vp.ScrollBy(n, 0, false)
	case tcell.KeyLeft:
		a.vp.ScrollBy(0, -n, false)
	case tcell.KeyRight:
		a.vp.ScrollBy(0, n, false)
	case tcell.KeyPgUp:
		a.vp.PageUp(smooth)
	case tcell.KeyPgDn:
		a.vp.PageDown(smooth)
	case tcell.KeyCtrlU:
		a.vp.HalfPageUp(smooth)
	case tcell.KeyCtrlD:
		a.vp.HalfPageDown(smooth)
	case tcell.KeyHome:
		a.scrollTop()
	case tcell.KeyEnd:
		a.vp.ScrollToBottom(smooth)
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.quit = true
	case tcell.KeyRune:
		a.handleRune(e.Rune(), n)
	}
}

func (a *App) handleRune(r rune, n int) {
	smooth := a.cfg.Scroll.Smooth

	switch r {
	case 'q':
		a.quit = true
	case 'j':
		a.vp.ScrollBy(n, 0, false)
	case 'k':
		a.vp.ScrollBy(-n, 0, false)
	case 'h':
		a.vp.ScrollBy(0, -n, false)
	case 'l':
		a.vp.ScrollBy(0, n, false)
	case ' ':
		a.vp.PageDown(smooth)
	case 'b':
		a.vp.PageUp(smooth)
	case 'g':
		a.scrollTop()
	case 'G':
		a.vp.ScrollToBottom(smooth)
	case 'z':
		if a.hasMark {
			a.vp.CenterOn(a.mark, smooth)
		}
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		a.vp.ScrollToPercent(float64(r-'0')/10, smooth)
	case 'n':
		if line, ok := a.content.NextHeading(a.vp.ScrollTop()); ok {
			a.jumpTo(line)
		}
	case 'N':
		if line, ok := a.content.PrevHeading(a.vp.ScrollTop()); ok {
			a.jumpTo(line)
		}
	}
}

// finishAnimation jumps straight to the end of a running animation.
func (a *App) finishAnimation() {
	if !a.vp.IsAnimating() {
		return
	}
	top, left := a.vp.Target()
	a.vp.StopAnimation()
	a.vp.ScrollTo(top, left, false)
}

// scrollTop is skipped at the origin, where no settle would ever arrive.
func (a *App) scrollTop() {
	if a.vp.ScrollTop() == 0 && a.vp.ScrollLeft() == 0 {
		a.vp.StopAnimation()
		a.status.message = "already at top"
		return
	}
	ch := a.mgr.ScrollTop(a.cfg.Scroll.Smooth)
	a.pending = append(a.pending, pendingSettle{label: "top", ch: ch})
}

func (a *App) jumpTo(line int) {
	anchor := a.doc.NewAnchor(line, a.vp.ScrollLeft())
	opts := manager.DefaultScrollToElementOptions()
	opts.Animate = a.cfg.Scroll.Smooth
	a.mark, a.hasMark = line, true

	r := anchor.BoundingRect()
	if !a.vp.CanScrollBy(r.Top+opts.Top, r.Left+opts.Left) {
		a.status.message = fmt.Sprintf("cannot scroll to line %d", line+1)
		return
	}

	ch, err := a.mgr.ScrollToElement(anchor, opts)
	if err != nil {
		a.log.Error("scroll to line %d: %v", line, err)
		return
	}
	a.pending = append(a.pending, pendingSettle{label: fmt.Sprintf("line %d", line+1), ch: ch})
}

// drainSettled reports scroll commands whose settle has arrived.
func (a *App) drainSettled() {
	kept := a.pending[:0]
	for _, p := range a.pending {
		select {
		case pos, ok := <-p.ch:
			if ok {
				a.status.message = fmt.Sprintf("reached %s at %s", p.label, pos)
				a.log.Debug("settled at %s after jump to %s", pos, p.label)
			}
		default:
			kept = append(kept, p)
		}
	}
	a.pending = kept
}

// Draw renders the visible text and the status line.
func (a *App) Draw() {
	a.screen.Clear()

	w, h := a.screen.Size()
	first, last := a.vp.VisibleRange()
	left := a.vp.ScrollLeft()
	rows := h - statusRows

	for line := first; line <= last && line < a.content.Len(); line++ {
		y := line - first
		style := tcell.StyleDefault
		if a.content.IsHeading(line) {
			style = style.Bold(true)
		}
		drawText(a.screen, 0, y, w, left, a.content.Line(line), style)
	}

	if rows >= 0 {
		bar := tcell.StyleDefault.Reverse(true)
		for x := 0; x < w; x++ {
			a.screen.SetContent(x, rows, ' ', nil, bar)
		}
		a.status.percent = int(math.Round(a.vp.ScrollPercent() * 100))
		drawText(a.screen, 0, rows, w, 0, a.status.String(), bar)
	}

	a.screen.Show()
}

// drawText draws s on row y starting at display column skip, clipped to
// width cells.
func drawText(screen tcell.Screen, x, y, width, skip int, s string, style tcell.Style) {
	col := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col >= skip {
			sx := x + col - skip
			if sx+rw > width {
				return
			}
			screen.SetContent(sx, y, r, nil, style)
		}
		col += rw
	}
}
