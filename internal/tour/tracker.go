package tour

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"weather-display/pkg/observe"
)

// StartDelay is how long a mounted tracker waits before showing step 0.
const StartDelay = time.Second

var ErrNotActive = errors.New("tour is not active")

type State int

const (
	StateDormant State = iota
	StateActive
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	default:
		return "dormant"
	}
}

// Host is the rendering surface the tracker measures. Callbacks passed to
// Observe fire on scroll and resize until the returned stop func is called.
type Host interface {
	Resolve(anchor string) (Rect, bool)
	Viewport() Viewport
	ScrollIntoView(anchor string)
	Observe(onChange func()) (stop func())
}

// SeenFlag is the durable "tour seen" switch.
type SeenFlag interface {
	HasSeenTour(ctx context.Context) (bool, error)
	MarkTourSeen(ctx context.Context) error
}

// Tracker walks a host through the steps. It is safe for concurrent use:
// activation fires on a timer goroutine and host callbacks may arrive from
// anywhere.
type Tracker struct {
	host  Host
	seen  SeenFlag
	clock clockwork.Clock
	l     *observe.Logger

	mu       sync.Mutex
	state    State
	step     int
	rect     Rect
	vp       Viewport
	resolved bool
	timer    clockwork.Timer
	stop     func()
}

type Option func(*Tracker)

func WithClock(c clockwork.Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

func NewTracker(host Host, seen SeenFlag, l *observe.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		host:  host,
		seen:  seen,
		clock: clockwork.NewRealClock(),
		l:     l,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Mount schedules step 0 after StartDelay unless the tour was already seen.
func (t *Tracker) Mount(ctx context.Context) error {
	seen, err := t.seen.HasSeenTour(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if seen || t.state != StateDormant || t.timer != nil {
		return nil
	}

	t.timer = t.clock.AfterFunc(StartDelay, t.activate)
	return nil
}

// activate shows step 0. The anchor is measured before the state is
// published so an active tracker always has a measurement.
func (t *Tracker) activate() {
	t.mu.Lock()
	if t.state != StateDormant || t.timer == nil {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	anchor := steps[0].Target
	stop := t.host.Observe(t.refresh)
	rect, ok := t.host.Resolve(anchor)
	vp := t.host.Viewport()

	t.mu.Lock()
	if t.state != StateDormant || t.timer == nil {
		t.mu.Unlock()
		stop()
		return
	}
	t.timer = nil
	t.state = StateActive
	t.step = 0
	t.rect, t.vp, t.resolved = rect, vp, ok
	t.stop = stop
	t.mu.Unlock()

	t.l.Debug("tour started")

	if ok && !rect.Within(vp) {
		t.host.ScrollIntoView(anchor)
	}
}

// refresh re-measures the current anchor and scrolls it into view when it
// is not fully visible.
func (t *Tracker) refresh() {
	t.mu.Lock()
	if t.state != StateActive {
		t.mu.Unlock()
		return
	}
	step := t.step
	anchor := steps[step].Target
	t.mu.Unlock()

	rect, ok := t.host.Resolve(anchor)
	vp := t.host.Viewport()

	t.mu.Lock()
	current := t.state == StateActive && t.step == step
	if current {
		t.rect, t.vp, t.resolved = rect, vp, ok
	}
	t.mu.Unlock()

	if !current {
		return
	}
	if !ok {
		t.l.Debug("tour anchor not found", map[string]any{"anchor": anchor})
		return
	}
	if !rect.Within(vp) {
		t.host.ScrollIntoView(anchor)
	}
}

// Next advances to the following step, completing the tour after the last.
func (t *Tracker) Next(ctx context.Context) error {
	t.mu.Lock()
	if t.state != StateActive {
		t.mu.Unlock()
		return ErrNotActive
	}
	if t.step < NumSteps-1 {
		t.step++
		t.resolved = false
		t.mu.Unlock()
		t.refresh()
		return nil
	}
	t.mu.Unlock()

	return t.complete(ctx)
}

// Dismiss ends the tour from any step.
func (t *Tracker) Dismiss(ctx context.Context) error {
	t.mu.Lock()
	active := t.state == StateActive
	t.mu.Unlock()

	if !active {
		return ErrNotActive
	}
	return t.complete(ctx)
}

func (t *Tracker) complete(ctx context.Context) error {
	t.mu.Lock()
	if t.state != StateActive {
		t.mu.Unlock()
		return ErrNotActive
	}
	t.state = StateCompleted
	t.step = 0
	t.resolved = false
	stop := t.stop
	t.stop = nil
	t.mu.Unlock()

	if stop != nil {
		stop()
	}

	t.l.Debug("tour completed")
	return t.seen.MarkTourSeen(ctx)
}

// Unmount cancels a pending start and stops observing the host. An
// unfinished tour goes back to Dormant without being recorded as seen.
func (t *Tracker) Unmount() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if t.state == StateActive {
		t.state = StateDormant
		t.step = 0
		t.resolved = false
	}
	stop := t.stop
	t.stop = nil
	t.mu.Unlock()

	if stop != nil {
		stop()
	}
}

// Overlay returns the geometry for the current step. ok is false while
// inactive or when the anchor could not be resolved.
func (t *Tracker) Overlay() (Overlay, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateActive || !t.resolved {
		return Overlay{}, false
	}
	return Layout(t.rect, t.vp), true
}

func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

// Current returns the active step and its index.
func (t *Tracker) Current() (Step, int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateActive {
		return Step{}, 0, false
	}
	return steps[t.step], t.step, true
}
