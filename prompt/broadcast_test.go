package prompt

import (
	"sync"
	"testing"
	"time"
)

// fakeClock runs scheduled callbacks synchronously when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return !t.fired
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

func newTestBroadcaster(window time.Duration) (*Store, *fakeClock, *[][]Prompt) {
	store := NewStore()
	store.SetPrompts([]Prompt{New("alpha", 0, 0, "#9900ff")})

	clock := &fakeClock{}
	var deliveries [][]Prompt
	b := NewBroadcaster(window, clock, store.Snapshot, func(ps []Prompt) {
		deliveries = append(deliveries, ps)
	})
	store.OnMutate(b.Notify)
	return store, clock, &deliveries
}

func TestBurstCoalescesToOneNotification(t *testing.T) {
	store, clock, deliveries := newTestBroadcaster(100 * time.Millisecond)
	id := store.Snapshot()[0].ID

	// N edits to the same identity inside one window
	for _, w := range []float64{0.5, 1.0, 1.5} {
		p, _ := store.Get(id)
		p.Weight = w
		if err := store.ApplyEdit(p); err != nil {
			t.Fatalf("ApplyEdit: %v", err)
		}
		clock.Advance(10 * time.Millisecond)
	}
	clock.Advance(100 * time.Millisecond)

	if len(*deliveries) != 1 {
		t.Fatalf("got %d notifications, want 1", len(*deliveries))
	}
	if got := (*deliveries)[0][0].Weight; got != 1.5 {
		t.Errorf("payload weight = %v, want state after last edit (1.5)", got)
	}
}

func TestSingleEditFiresOnceAfterWindow(t *testing.T) {
	store, clock, deliveries := newTestBroadcaster(100 * time.Millisecond)
	id := store.Snapshot()[0].ID

	p, _ := store.Get(id)
	p.Weight = 1
	if err := store.ApplyEdit(p); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}

	clock.Advance(99 * time.Millisecond)
	if len(*deliveries) != 0 {
		t.Fatalf("fired before the window closed")
	}

	clock.Advance(1 * time.Millisecond)
	if len(*deliveries) != 1 {
		t.Fatalf("got %d notifications, want 1", len(*deliveries))
	}

	// Quiet period: nothing further fires
	clock.Advance(500 * time.Millisecond)
	if len(*deliveries) != 1 {
		t.Errorf("got %d notifications after quiet period, want 1", len(*deliveries))
	}
}

func TestEditAfterDeliveryOpensNewWindow(t *testing.T) {
	store, clock, deliveries := newTestBroadcaster(100 * time.Millisecond)
	id := store.Snapshot()[0].ID

	p, _ := store.Get(id)
	p.Weight = 1
	store.ApplyEdit(p)
	clock.Advance(100 * time.Millisecond)

	p.Weight = 2
	store.ApplyEdit(p)
	clock.Advance(100 * time.Millisecond)

	if len(*deliveries) != 2 {
		t.Fatalf("got %d notifications, want 2", len(*deliveries))
	}
	if got := (*deliveries)[1][0].Weight; got != 2 {
		t.Errorf("second payload weight = %v, want 2", got)
	}
}

func TestCloseCancelsPendingDelivery(t *testing.T) {
	store, clock, deliveries := newTestBroadcaster(100 * time.Millisecond)
	id := store.Snapshot()[0].ID

	bcast := NewBroadcaster(100*time.Millisecond, clock, store.Snapshot, func(ps []Prompt) {
		*deliveries = append(*deliveries, ps)
	})
	store.OnMutate(bcast.Notify)

	p, _ := store.Get(id)
	p.Weight = 1
	store.ApplyEdit(p)

	bcast.Close()
	clock.Advance(time.Second)

	if len(*deliveries) != 0 {
		t.Errorf("got %d notifications after Close, want 0", len(*deliveries))
	}

	// Notify after Close stays silent too
	bcast.Notify()
	clock.Advance(time.Second)
	if len(*deliveries) != 0 {
		t.Errorf("Notify after Close delivered")
	}
}

func TestDefaultsApplied(t *testing.T) {
	b := NewBroadcaster(0, nil, func() []Prompt { return nil }, func([]Prompt) {})
	if b.window != DefaultThrottleWindow {
		t.Errorf("window = %v, want %v", b.window, DefaultThrottleWindow)
	}
	if b.clock == nil {
		t.Error("clock not defaulted")
	}
	b.Close()
}
