package orchestration

import (
	"sync"

	"github.com/koscakluka/astra/core/events"
)

type EventHandler func(events.Event)

// eventDispatcher delivers events to handlers in emission order on its own
// goroutine, so handlers never run while the session lock is held.
type eventDispatcher struct {
	handlers []EventHandler

	mu     sync.Mutex
	queue  []events.Event
	closed bool

	signal  chan struct{}
	closing chan struct{}
	done    chan struct{}
}

func newEventDispatcher(handlers []EventHandler) *eventDispatcher {
	d := &eventDispatcher{
		handlers: handlers,
		signal:   make(chan struct{}, 1),
		closing:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *eventDispatcher) emit(event events.Event) {
	if len(d.handlers) == 0 {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.queue = append(d.queue, event)
	d.mu.Unlock()

	select {
	case d.signal <- struct{}{}:
	default:
	}
}

func (d *eventDispatcher) take() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	batch := d.queue
	d.queue = nil
	return batch
}

func (d *eventDispatcher) run() {
	defer close(d.done)

	for {
		if batch := d.take(); len(batch) > 0 {
			d.deliver(batch)
			continue
		}

		select {
		case <-d.signal:
		case <-d.closing:
			d.deliver(d.take())
			return
		}
	}
}

func (d *eventDispatcher) deliver(batch []events.Event) {
	for _, event := range batch {
		for _, handler := range d.handlers {
			d.call(handler, event)
		}
	}
}

func (d *eventDispatcher) call(handler EventHandler, event events.Event) {
	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Error("event handler panicked", "kind", string(event.Kind()), "panic", recovered)
		}
	}()
	handler(event)
}

// close stops accepting events. Events already queued are still delivered.
// It does not wait for delivery so handlers may call it.
func (d *eventDispatcher) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	close(d.closing)
}

// wait blocks until every queued event was delivered after close.
func (d *eventDispatcher) wait() {
	<-d.done
}
