package tour

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-display/internal/settings"
	"weather-display/pkg/observe"
)

type fakeHost struct {
	mu        sync.Mutex
	rects     map[string]Rect
	vp        Viewport
	scrolled  []string
	observers map[int]func()
	nextID    int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		rects: map[string]Rect{
			"button-location":   {Top: 20, Left: 40, Width: 120, Height: 32},
			"button-light-page": {Top: 20, Left: 1200, Width: 32, Height: 32},
			"forecast-list":     {Top: 1400, Left: 40, Width: 600, Height: 400},
		},
		vp:        desktop,
		observers: make(map[int]func()),
	}
}

func (h *fakeHost) Resolve(anchor string) (Rect, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rects[anchor]
	return r, ok
}

func (h *fakeHost) Viewport() Viewport {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.vp
}

func (h *fakeHost) ScrollIntoView(anchor string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.scrolled = append(h.scrolled, anchor)
}

func (h *fakeHost) Observe(onChange func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.observers[id] = onChange

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.observers, id)
	}
}

func (h *fakeHost) observerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.observers)
}

// move changes an anchor's box and fires the scroll observers.
func (h *fakeHost) move(anchor string, r Rect) {
	h.mu.Lock()
	h.rects[anchor] = r
	callbacks := make([]func(), 0, len(h.observers))
	for _, cb := range h.observers {
		callbacks = append(callbacks, cb)
	}
	h.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}

type failingFlag struct{}

func (failingFlag) HasSeenTour(context.Context) (bool, error) { return false, errors.New("disk gone") }
func (failingFlag) MarkTourSeen(context.Context) error        { return nil }

func newTestTracker(t *testing.T, host Host, flags SeenFlag) (*Tracker, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	return NewTracker(host, flags, observe.NewZapLogger("test-app"), WithClock(clock)), clock
}

func start(t *testing.T, tr *Tracker, clock *clockwork.FakeClock) {
	t.Helper()
	require.NoError(t, tr.Mount(context.Background()))
	clock.Advance(StartDelay)
	require.Eventually(t, func() bool { return tr.State() == StateActive }, time.Second, time.Millisecond)
}

func TestTracker_StartsAfterDelay(t *testing.T) {
	host := newFakeHost()
	tr, clock := newTestTracker(t, host, settings.NewFlags(settings.NewMemoryStore()))

	require.NoError(t, tr.Mount(context.Background()))
	clock.Advance(StartDelay - time.Millisecond)
	assert.Equal(t, StateDormant, tr.State())

	clock.Advance(time.Millisecond)
	require.Eventually(t, func() bool { return tr.State() == StateActive }, time.Second, time.Millisecond)

	step, idx, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "button-location", step.Target)

	o, ok := tr.Overlay()
	require.True(t, ok)
	assert.Equal(t, Layout(host.rects["button-location"], desktop), o)
	assert.Equal(t, 1, host.observerCount())
}

func TestTracker_NextThroughAllSteps(t *testing.T) {
	ctx := context.Background()
	flags := settings.NewFlags(settings.NewMemoryStore())
	host := newFakeHost()
	tr, clock := newTestTracker(t, host, flags)
	start(t, tr, clock)

	require.NoError(t, tr.Next(ctx))
	_, idx, _ := tr.Current()
	assert.Equal(t, 1, idx)

	require.NoError(t, tr.Next(ctx))
	step, idx, _ := tr.Current()
	assert.Equal(t, 2, idx)
	assert.Equal(t, "forecast-list", step.Target)
	assert.Contains(t, host.scrolled, "forecast-list")

	require.NoError(t, tr.Next(ctx))
	assert.Equal(t, StateCompleted, tr.State())
	assert.Equal(t, 0, host.observerCount())

	_, ok := tr.Overlay()
	assert.False(t, ok)
	assert.ErrorIs(t, tr.Next(ctx), ErrNotActive)

	seen, err := flags.HasSeenTour(ctx)
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestTracker_DismissPersists(t *testing.T) {
	ctx := context.Background()
	flags := settings.NewFlags(settings.NewMemoryStore())
	tr, clock := newTestTracker(t, newFakeHost(), flags)
	start(t, tr, clock)

	require.NoError(t, tr.Next(ctx))
	require.NoError(t, tr.Dismiss(ctx))
	assert.Equal(t, StateCompleted, tr.State())

	fresh, freshClock := newTestTracker(t, newFakeHost(), flags)
	require.NoError(t, fresh.Mount(ctx))
	freshClock.Advance(10 * StartDelay)
	assert.Equal(t, StateDormant, fresh.State())
	assert.ErrorIs(t, fresh.Dismiss(ctx), ErrNotActive)
}

func TestTracker_RemeasuresOnScroll(t *testing.T) {
	host := newFakeHost()
	tr, clock := newTestTracker(t, host, settings.NewFlags(settings.NewMemoryStore()))
	start(t, tr, clock)

	moved := Rect{Top: 620, Left: 40, Width: 120, Height: 32}
	host.move("button-location", moved)

	o, ok := tr.Overlay()
	require.True(t, ok)
	assert.Equal(t, SideAbove, o.Side)
	assert.Equal(t, Layout(moved, desktop), o)
}

func TestTracker_UnresolvedAnchor(t *testing.T) {
	host := newFakeHost()
	delete(host.rects, "button-location")
	tr, clock := newTestTracker(t, host, settings.NewFlags(settings.NewMemoryStore()))
	start(t, tr, clock)

	_, ok := tr.Overlay()
	assert.False(t, ok)

	host.move("button-location", Rect{Top: 20, Left: 40, Width: 120, Height: 32})
	_, ok = tr.Overlay()
	assert.True(t, ok)
}

func TestTracker_UnmountStopsObserving(t *testing.T) {
	host := newFakeHost()
	tr, clock := newTestTracker(t, host, settings.NewFlags(settings.NewMemoryStore()))
	start(t, tr, clock)
	require.Equal(t, 1, host.observerCount())

	tr.Unmount()
	assert.Equal(t, 0, host.observerCount())
	assert.Equal(t, StateDormant, tr.State())
}

func TestTracker_UnmountCancelsPendingStart(t *testing.T) {
	host := newFakeHost()
	tr, clock := newTestTracker(t, host, settings.NewFlags(settings.NewMemoryStore()))

	require.NoError(t, tr.Mount(context.Background()))
	tr.Unmount()
	clock.Advance(2 * StartDelay)

	assert.Equal(t, StateDormant, tr.State())
	assert.Equal(t, 0, host.observerCount())
}

func TestTracker_MountPropagatesFlagError(t *testing.T) {
	tr, _ := newTestTracker(t, newFakeHost(), failingFlag{})

	assert.Error(t, tr.Mount(context.Background()))
	assert.Equal(t, StateDormant, tr.State())
}
