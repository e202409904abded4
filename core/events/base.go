package events

import "time"

type Kind string

type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

type Base struct {
	kind      Kind
	timestamp time.Time
}

func NewBase(kind Kind) Base {
	return NewBaseAt(kind, time.Now())
}

// NewBaseAt creates a base stamped with the given time, usually taken from
// the session clock.
func NewBaseAt(kind Kind, at time.Time) Base {
	return Base{kind: kind, timestamp: at}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}

type Option func(*Base)

// WithTimestamp overrides the time an event is stamped with.
func WithTimestamp(at time.Time) Option {
	return func(b *Base) { b.timestamp = at }
}

func newBase(kind Kind, opts []Option) Base {
	base := NewBase(kind)
	for _, opt := range opts {
		opt(&base)
	}
	return base
}
