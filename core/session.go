package orchestration

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/koscakluka/astra/core/events"
	"github.com/koscakluka/astra/core/flows"
	"github.com/koscakluka/astra/core/interaction"
	"github.com/koscakluka/astra/core/scenario"
)

// Session owns the assistant interaction lifecycle: the orb state, the
// transcript buffer, the search pipeline, the conversation log and the
// proactive task. Every state change goes through transition.
type Session struct {
	mu sync.Mutex

	phase        Phase
	conversation *conversation
	artifact     *interaction.DataArtifact
	task         *interaction.ProactiveTask
	config       interaction.Config

	speechToText  SpeechToText
	searcher      Searcher
	stages        []Stage
	timings       Timings
	greeting      string
	proactiveTask func() *interaction.ProactiveTask

	clock       flows.Clock
	recognition *flows.Flow
	pipeline    *flows.Flow
	watchdog    *flows.Flow
	proactive   *flows.Flow

	handlers   []EventHandler
	dispatcher *eventDispatcher

	baseContext context.Context
	cancelBase  context.CancelFunc
	stopOnDone  func() bool
	workers     sync.WaitGroup

	startOnce sync.Once
	closeOnce sync.Once
	closed    bool
}

// NewSession builds a session in standby. Without options it runs the
// default scenario.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		phase:        Standby{},
		conversation: newConversation(),
		config:       interaction.DefaultConfig(),
		clock:        flows.WallClock(),
	}
	WithScenario(scenario.Default())(s)

	for _, opt := range opts {
		opt(s)
	}

	s.recognition = flows.New("recognition", s.clock)
	s.pipeline = flows.New("pipeline", s.clock)
	s.watchdog = flows.New("watchdog", s.clock)
	s.proactive = flows.New("proactive", s.clock)
	s.dispatcher = newEventDispatcher(s.handlers)
	s.baseContext, s.cancelBase = context.WithCancel(context.Background())

	return s
}

// Start seeds the greeting, schedules the proactive task and binds the
// session to ctx: when ctx is done the session is closed. Interactions
// already in progress are left running.
//
// Start only has an effect the first time it is called.
func (s *Session) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.closed {
			return
		}

		// Runs started before Start keep their contexts; only the span of ctx
		// is carried over.
		s.baseContext = trace.ContextWithSpan(s.baseContext, trace.SpanFromContext(ctx))
		s.stopOnDone = context.AfterFunc(ctx, s.Close)

		if s.greeting != "" {
			s.appendTurn(interaction.RoleAssistant, s.greeting)
		}

		if s.proactiveTask != nil {
			run := s.proactive.Start(s.baseContext)
			run.AfterFunc(s.timings.ProactiveDelay, func() { s.proposeScheduledTask(run) })
		}

		logger.InfoContext(s.baseContext, "session started",
			"wake_word", s.config.WakeWord,
			"passive_listening", s.config.PassiveListening)
	})
}

// Close cancels every flow and waits for running workers. Events queued before
// Close are still delivered. Operations on a closed session are no-ops.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.recognition.Cancel()
		s.pipeline.Cancel()
		s.watchdog.Cancel()
		s.proactive.Cancel()
		s.cancelBase()
		if s.stopOnDone != nil {
			s.stopOnDone()
		}
		s.mu.Unlock()

		s.workers.Wait()
		s.dispatcher.close()
	})
}

// Wait blocks until the session is closed and every queued event has been
// delivered to the handlers.
func (s *Session) Wait() {
	s.dispatcher.wait()
}

// ToggleMic is the microphone button. From standby it starts listening; while
// listening it either submits the transcript or, if nothing was heard, goes
// back to standby; while processing or speaking it interrupts and listens
// again. It returns the state after the toggle.
func (s *Session) ToggleMic() interaction.OrbState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.phase.OrbState()
	}

	switch phase := s.phase.(type) {
	case Standby:
		s.transition(Listening{}, "microphone on")
	case Listening:
		transcript := strings.TrimSpace(phase.Transcript)
		if transcript == "" {
			s.transition(Standby{}, "microphone off without speech")
			break
		}
		s.appendTurn(interaction.RoleUser, transcript)
		s.transition(Processing{Query: transcript}, "microphone off")
	case Processing, Speaking:
		s.transition(Listening{}, "microphone on, interrupting")
	}

	return s.phase.OrbState()
}

// WakeWordDetected handles a wake word event from a detector. It only has an
// effect in passive listening mode while in standby and reports whether the
// session started listening.
func (s *Session) WakeWordDetected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !s.config.PassiveListening {
		return false
	}
	if _, ok := s.phase.(Standby); !ok {
		return false
	}

	wakeWord := s.config.WakeWord
	s.emit(events.NewWakeWordDetected(wakeWord, s.stamp()))
	s.appendTurn(interaction.RoleAssistant, "Wake word \""+wakeWord+"\" detected. Listening.")
	s.transition(Listening{}, "wake word detected")
	return true
}

// Hear feeds an overheard phrase to the wake word detector.
func (s *Session) Hear(phrase string) bool {
	if !containsWakeWord(phrase, s.Config().WakeWord) {
		return false
	}
	return s.WakeWordDetected()
}

func containsWakeWord(phrase, wakeWord string) bool {
	normalize := func(text string) string {
		return strings.Join(strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
			return !(r == '\'' || r == '-' || 'a' <= r && r <= 'z' || '0' <= r && r <= '9' || r > 127)
		}), " ")
	}

	word := normalize(wakeWord)
	if word == "" {
		return false
	}
	return strings.Contains(" "+normalize(phrase)+" ", " "+word+" ")
}

// Standby forces the session back to standby from any state, cancelling
// recognition and any running pipeline.
func (s *Session) Standby() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if _, ok := s.phase.(Standby); ok {
		return
	}
	s.transition(Standby{}, "reset")
}

func (s *Session) Config() interaction.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

func (s *Session) SetWakeWord(wakeWord string) error {
	wakeWord = strings.TrimSpace(wakeWord)
	if wakeWord == "" {
		return ErrEmptyWakeWord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.config.WakeWord == wakeWord {
		return nil
	}
	s.config.WakeWord = wakeWord
	s.emit(events.NewConfigChanged(s.config, s.stamp()))
	return nil
}

// SetPassiveListening toggles passive mode. It takes effect the next time the
// watchdog or speaking hold elapses; the current state is left alone.
func (s *Session) SetPassiveListening(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.config.PassiveListening == enabled {
		return
	}
	s.config.PassiveListening = enabled
	s.emit(events.NewConfigChanged(s.config, s.stamp()))
}

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	Phase        Phase
	State        interaction.OrbState
	Transcript   string
	Status       string
	Conversation []interaction.Turn
	Artifact     *interaction.DataArtifact
	Task         *interaction.ProactiveTask
	Config       interaction.Config
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := Snapshot{
		Phase:        s.phase,
		State:        s.phase.OrbState(),
		Conversation: s.conversation.History(),
		Config:       s.config,
	}

	switch phase := s.phase.(type) {
	case Listening:
		snapshot.Transcript = phase.Transcript
	case Processing:
		snapshot.Status = phase.Status
	}

	if s.artifact != nil {
		artifact := s.artifact.Clone()
		snapshot.Artifact = &artifact
	}
	if s.task != nil {
		task := *s.task
		snapshot.Task = &task
	}

	return snapshot
}

func (s *Session) State() interaction.OrbState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase.OrbState()
}

// Conversation returns the conversation log, oldest first.
func (s *Session) Conversation() []interaction.Turn {
	return s.conversation.History()
}

func (s *Session) emit(event events.Event) {
	s.dispatcher.emit(event)
}

func (s *Session) stamp() events.Option {
	return events.WithTimestamp(s.clock.Now())
}

func (s *Session) appendTurn(role interaction.Role, content string) interaction.Turn {
	turn := s.conversation.append(role, content, s.clock.Now())
	s.emit(events.NewConversationTurnAppended(turn, s.stamp()))
	trace.SpanFromContext(s.baseContext).AddEvent("conversation turn appended",
		trace.WithAttributes(attribute.String("turn.role", string(role)), attribute.String("turn.id", turn.ID)))
	return turn
}

func newArtifactID() string {
	return uuid.NewString()
}
