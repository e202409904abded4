package flows

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"
)

type manualTimer struct {
	clock   *manualClock
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasPending := !t.stopped && !t.fired
	t.stopped = true
	return wasPending
}

type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 10, 18, 20, 4, 12, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &manualTimer{clock: c, at: c.now.Add(d), fn: f}
	c.timers = append(c.timers, timer)
	return timer
}

// Advance moves time forward and fires due timers in deadline order.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*manualTimer
	for _, timer := range c.timers {
		if !timer.stopped && !timer.fired && !timer.at.After(c.now) {
			timer.fired = true
			due = append(due, timer)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, timer := range due {
		timer.fn()
	}
}

func TestAfterFuncFiresForCurrentRun(t *testing.T) {
	clock := newManualClock()
	flow := New("reveal", clock)

	run := flow.Start(context.Background())
	fired := 0
	if ok := run.AfterFunc(time.Second, func() { fired++ }); !ok {
		t.Fatalf("expected scheduling on a fresh run to succeed")
	}

	clock.Advance(500 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("expected callback to wait for its deadline, fired %d times", fired)
	}

	clock.Advance(500 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected callback to fire once, fired %d times", fired)
	}
}

func TestStartSupersedesPreviousRun(t *testing.T) {
	clock := newManualClock()
	flow := New("pipeline", clock)

	first := flow.Start(context.Background())
	var fired []string
	first.AfterFunc(time.Second, func() { fired = append(fired, "first") })

	second := flow.Start(context.Background())
	second.AfterFunc(time.Second, func() { fired = append(fired, "second") })

	if first.Current() {
		t.Fatalf("expected first run to be superseded")
	}
	if !second.Current() {
		t.Fatalf("expected second run to be current")
	}
	if !errors.Is(first.Context().Err(), context.Canceled) {
		t.Fatalf("expected superseded run context to be cancelled, got %v", first.Context().Err())
	}

	clock.Advance(time.Second)
	if len(fired) != 1 || fired[0] != "second" {
		t.Fatalf("expected only the second run to fire, got %v", fired)
	}
	if second.Generation() <= first.Generation() {
		t.Fatalf("expected generation to increase, got %d then %d", first.Generation(), second.Generation())
	}
}

func TestCancelDropsPendingCallbacks(t *testing.T) {
	clock := newManualClock()
	flow := New("watchdog", clock)

	run := flow.Start(context.Background())
	fired := false
	run.AfterFunc(10*time.Second, func() { fired = true })

	flow.Cancel()
	clock.Advance(time.Minute)

	if fired {
		t.Fatalf("expected cancelled callback to be dropped")
	}
	if flow.Active() {
		t.Fatalf("expected flow to be idle after cancel")
	}
	if run.AfterFunc(time.Second, func() {}) {
		t.Fatalf("expected scheduling on a cancelled run to fail")
	}
}

func TestCallbackFiringAfterSupersedeIsIgnored(t *testing.T) {
	clock := newManualClock()
	flow := New("reveal", clock)

	run := flow.Start(context.Background())
	fired := false
	run.AfterFunc(time.Second, func() {
		fired = true
	})

	// The timer is already due when the next run starts; Stop on the manual
	// timer marks it as stopped so it must never reach the callback.
	flow.Start(context.Background())
	clock.Advance(time.Second)

	if fired {
		t.Fatalf("expected stale generation callback to be ignored")
	}
}

func TestCancelOnIdleFlowIsNoop(t *testing.T) {
	flow := New("idle", nil)
	generation := flow.Generation()

	flow.Cancel()

	if flow.Generation() != generation {
		t.Fatalf("expected idle cancel to keep generation %d, got %d", generation, flow.Generation())
	}
}

func TestSleepReturnsWhenRunCancelled(t *testing.T) {
	clock := newManualClock()
	flow := New("stages", clock)
	run := flow.Start(context.Background())

	result := make(chan error, 1)
	go func() { result <- run.Sleep(time.Hour) }()

	flow.Cancel()

	select {
	case err := <-result:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context cancellation, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for sleep to return")
	}
}

func TestSleepWakesAfterDuration(t *testing.T) {
	flow := New("stages", nil)
	run := flow.Start(context.Background())

	start := time.Now()
	if err := run.Sleep(20 * time.Millisecond); err != nil {
		t.Fatalf("expected sleep to complete, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected sleep to last at least 20ms, took %s", elapsed)
	}
}
