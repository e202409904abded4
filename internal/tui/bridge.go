package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/koscakluka/astra/core/events"
)

// sessionEventMsg is sent for every event the session emits.
type sessionEventMsg struct {
	event events.Event
}

// EventBridge forwards session events into the bubbletea loop. Register
// Handle as a session event handler and pass the bridge to New.
type EventBridge struct {
	events chan events.Event
	done   chan struct{}
}

func NewEventBridge() *EventBridge {
	return &EventBridge{
		events: make(chan events.Event, 64),
		done:   make(chan struct{}),
	}
}

// Handle blocks until the UI takes the event or the bridge is closed.
func (b *EventBridge) Handle(event events.Event) {
	select {
	case b.events <- event:
	case <-b.done:
	}
}

// Close unblocks pending and future Handle calls. It must be called once,
// after the program exits.
func (b *EventBridge) Close() {
	close(b.done)
}

func (b *EventBridge) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case event := <-b.events:
			return sessionEventMsg{event: event}
		case <-b.done:
			return nil
		}
	}
}
