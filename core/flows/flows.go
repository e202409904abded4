// Package flows provides restartable, cancellable timer chains.
//
// A Flow is a named slot that holds at most one active Run. Starting a new run
// supersedes the previous one: its context is cancelled, its pending timers are
// stopped and any callback that still fires is dropped because its generation
// no longer matches the flow.
package flows

import (
	"context"
	"sync"
	"time"
)

// Clock is the time source used to schedule flow callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type wallClock struct{}

// WallClock returns a Clock backed by the time package.
func WallClock() Clock { return wallClock{} }

func (wallClock) Now() time.Time { return time.Now() }

func (wallClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

type Flow struct {
	name  string
	clock Clock

	mu         sync.Mutex
	generation uint64
	active     bool
	cancel     context.CancelFunc
	timers     []Timer
}

func New(name string, clock Clock) *Flow {
	if clock == nil {
		clock = WallClock()
	}
	return &Flow{name: name, clock: clock}
}

// Start supersedes the current run, if any, and returns a new one bound to a
// child of ctx.
func (f *Flow) Start(ctx context.Context) *Run {
	if ctx == nil {
		ctx = context.Background()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopLocked()
	f.generation++
	runCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.active = true

	return &Run{flow: f, generation: f.generation, ctx: runCtx}
}

// Cancel invalidates the current run. It is safe to call on an idle flow.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.active {
		return
	}
	f.stopLocked()
	f.generation++
	f.active = false
}

// Active reports whether the flow has a run that was neither cancelled nor
// superseded.
func (f *Flow) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *Flow) Generation() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generation
}

func (f *Flow) stopLocked() {
	for _, timer := range f.timers {
		timer.Stop()
	}
	f.timers = nil
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Flow) isCurrent(generation uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active && f.generation == generation
}

// Run is one generation of a flow.
type Run struct {
	flow       *Flow
	generation uint64
	ctx        context.Context
}

// Context is cancelled as soon as the run stops being current.
func (r *Run) Context() context.Context { return r.ctx }

func (r *Run) Generation() uint64 { return r.generation }

func (r *Run) FlowName() string { return r.flow.name }

// Current reports whether the run is still the flow's active run. Owners that
// guard their own state with a lock should check Current while holding it.
func (r *Run) Current() bool {
	if r == nil {
		return false
	}
	return r.flow.isCurrent(r.generation)
}

// AfterFunc schedules fn after d. fn is dropped if the run is superseded or
// cancelled before it fires. It returns false when the run is already stale.
func (r *Run) AfterFunc(d time.Duration, fn func()) bool {
	f := r.flow

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.active || f.generation != r.generation {
		return false
	}

	timer := f.clock.AfterFunc(d, func() {
		if r.Current() {
			fn()
		}
	})
	f.timers = append(f.timers, timer)
	return true
}

// Sleep blocks for d or until the run's context is done.
func (r *Run) Sleep(d time.Duration) error {
	wake := make(chan struct{})
	if !r.AfterFunc(d, func() { close(wake) }) {
		return context.Canceled
	}

	select {
	case <-wake:
		return nil
	case <-r.ctx.Done():
		return r.ctx.Err()
	}
}
