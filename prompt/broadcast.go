package prompt

import (
	"sync"
	"time"
)

// DefaultThrottleWindow is how long a burst of edits is coalesced
// before one prompts-changed notification goes out.
const DefaultThrottleWindow = 100 * time.Millisecond

// Clock schedules deferred work. The real implementation wraps
// time.AfterFunc; tests substitute a fake and advance it by hand.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemClock returns the wall-clock scheduler.
func SystemClock() Clock { return systemClock{} }

// Broadcaster coalesces bursts of store mutations into at most one
// notification per throttle window.
//
// The first Notify in a quiet period arms a timer; further Notifys
// before it fires are absorbed. Delivery is trailing-edge: the payload
// is snapshotted when the window closes, so within a window only the
// last-applied state ever goes out.
type Broadcaster struct {
	window   time.Duration
	clock    Clock
	snapshot func() []Prompt
	deliver  func([]Prompt)

	mu      sync.Mutex
	pending Timer
	closed  bool
}

// NewBroadcaster creates a broadcaster. snapshot is called once per
// window close to capture the payload; deliver receives it.
func NewBroadcaster(window time.Duration, clock Clock, snapshot func() []Prompt, deliver func([]Prompt)) *Broadcaster {
	if window <= 0 {
		window = DefaultThrottleWindow
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Broadcaster{
		window:   window,
		clock:    clock,
		snapshot: snapshot,
		deliver:  deliver,
	}
}

// Notify records that state changed. Safe to call from any goroutine.
func (b *Broadcaster) Notify() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.pending != nil {
		return
	}
	b.pending = b.clock.AfterFunc(b.window, b.fire)
}

func (b *Broadcaster) fire() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.pending = nil
	b.mu.Unlock()

	// Snapshot outside the lock: the store has its own locking, and a
	// Notify racing in here just arms the next window.
	b.deliver(b.snapshot())
}

// Close cancels any pending delivery. No notification fires after
// Close returns.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
}
