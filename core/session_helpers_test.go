package orchestration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/koscakluka/astra/core/events"
	"github.com/koscakluka/astra/core/flows"
	"github.com/koscakluka/astra/core/interaction"
	"github.com/koscakluka/astra/core/scenario"
)

const testTranscript = "Search the latest Q3 earnings for TechCorp"

func newTestSession(t *testing.T, opts ...SessionOption) (*Session, *eventRecorder) {
	t.Helper()

	recorder := &eventRecorder{}
	base := []SessionOption{
		WithGreeting(""),
		WithProactiveTask(nil),
		WithSpeechToText(scenario.Recognizer{Text: testTranscript, Interval: time.Millisecond}),
		WithStages(Stage{Label: "SEARCHING", Duration: 5 * time.Millisecond}, Stage{Label: "AGGREGATING", Duration: 5 * time.Millisecond}),
		WithTimings(Timings{
			WatchdogTimeout: 5 * time.Second,
			SpeakingHold:    20 * time.Millisecond,
			ProactiveDelay:  time.Hour,
			SearchTimeout:   time.Second,
		}),
		WithEventHandler(recorder.handle),
	}

	s := NewSession(append(base, opts...)...)
	t.Cleanup(s.Close)
	return s, recorder
}

func waitForCondition(t *testing.T, timeout time.Duration, description string, condition func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Fatalf("timed out waiting for %s", description)
}

func waitForState(t *testing.T, s *Session, state interaction.OrbState) {
	t.Helper()
	waitForCondition(t, 2*time.Second, "state "+string(state), func() bool { return s.State() == state })
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) handle(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) snapshot() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

func (r *eventRecorder) count(kind events.Kind) int {
	n := 0
	for _, event := range r.snapshot() {
		if event.Kind() == kind {
			n++
		}
	}
	return n
}

func (r *eventRecorder) states() []interaction.OrbState {
	var states []interaction.OrbState
	for _, event := range r.snapshot() {
		if changed, ok := event.(events.OrbStateChanged); ok {
			states = append(states, changed.To)
		}
	}
	return states
}

// controlledSpeechToText hands the test the partial transcript callback of
// the current recognition run.
type controlledSpeechToText struct {
	mu        sync.Mutex
	onPartial func(string)
	calls     int
}

func (c *controlledSpeechToText) Transcribe(ctx context.Context, onPartial func(string)) error {
	c.mu.Lock()
	c.onPartial = onPartial
	c.calls++
	c.mu.Unlock()

	<-ctx.Done()
	return ctx.Err()
}

func (c *controlledSpeechToText) say(transcript string) {
	c.mu.Lock()
	onPartial := c.onPartial
	c.mu.Unlock()
	if onPartial != nil {
		onPartial(transcript)
	}
}

func (c *controlledSpeechToText) started() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.onPartial != nil
}

// stubbornSpeechToText ignores cancellation and keeps producing partials.
type stubbornSpeechToText struct {
	partials int
}

func (s stubbornSpeechToText) Transcribe(_ context.Context, onPartial func(string)) error {
	text := ""
	for i := 0; i < s.partials; i++ {
		text += "a"
		onPartial(text)
		time.Sleep(time.Millisecond)
	}
	return nil
}

type failingSpeechToText struct {
	err error
}

func (f failingSpeechToText) Transcribe(context.Context, func(string)) error {
	return f.err
}

type stubSearcher struct {
	result interaction.SearchResult
	err    error
}

func (s stubSearcher) Search(context.Context, string) (interaction.SearchResult, error) {
	return s.result, s.err
}

// hangingSearcher only returns once the search context is done.
type hangingSearcher struct{}

func (hangingSearcher) Search(ctx context.Context, _ string) (interaction.SearchResult, error) {
	<-ctx.Done()
	return interaction.SearchResult{}, ctx.Err()
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) AfterFunc(d time.Duration, f func()) flows.Timer {
	return time.AfterFunc(d, f)
}

// stuckSearcher ignores its context and only returns once release is closed.
type stuckSearcher struct {
	release chan struct{}
}

func (s stuckSearcher) Search(context.Context, string) (interaction.SearchResult, error) {
	<-s.release
	return interaction.SearchResult{Response: "too late"}, nil
}
