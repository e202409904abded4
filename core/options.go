package orchestration

import (
	"context"
	"time"

	"github.com/koscakluka/astra/core/flows"
	"github.com/koscakluka/astra/core/interaction"
	"github.com/koscakluka/astra/core/scenario"
)

type SessionOption func(*Session)

// SpeechToText is the streaming recognition provider. Transcribe reports the
// full transcript so far through onPartial until the utterance is done or ctx
// is cancelled.
type SpeechToText interface {
	Transcribe(ctx context.Context, onPartial func(transcript string)) error
}

// Searcher is the search/retrieval backend queried with the final transcript.
type Searcher interface {
	Search(ctx context.Context, query string) (interaction.SearchResult, error)
}

// Stage is one step of the search pipeline, held for Duration while its
// label is shown as the current status.
type Stage struct {
	Label    string
	Duration time.Duration
}

type Timings struct {
	// WatchdogTimeout is how long listening or processing may last before a
	// passive session falls back to standby.
	WatchdogTimeout time.Duration
	// SpeakingHold is how long a response is shown before a passive session
	// returns to standby.
	SpeakingHold time.Duration
	// ProactiveDelay is how long after Start the proactive task is proposed.
	ProactiveDelay time.Duration
	SearchTimeout  time.Duration
}

// WithScenario replaces the recognizer, searcher, stages, timings, greeting
// and proactive task with the ones described by s.
func WithScenario(s scenario.Scenario) SessionOption {
	return func(session *Session) {
		session.speechToText = scenario.NewRecognizer(s)
		session.searcher = scenario.NewSearcher(s)
		session.greeting = s.Greeting
		session.proactiveTask = s.ProactiveTask

		session.stages = make([]Stage, 0, len(s.Stages))
		for _, stage := range s.Stages {
			session.stages = append(session.stages, Stage{Label: stage.Label, Duration: stage.Duration.Std()})
		}

		session.timings = Timings{
			WatchdogTimeout: s.Timings.WatchdogTimeout.Std(),
			SpeakingHold:    s.Timings.SpeakingHold.Std(),
			ProactiveDelay:  s.Timings.ProactiveDelay.Std(),
			SearchTimeout:   s.Timings.SearchTimeout.Std(),
		}
	}
}

func WithSpeechToText(client SpeechToText) SessionOption {
	return func(s *Session) {
		if client != nil {
			s.speechToText = client
		}
	}
}

func WithSearcher(searcher Searcher) SessionOption {
	return func(s *Session) {
		if searcher != nil {
			s.searcher = searcher
		}
	}
}

func WithStages(stages ...Stage) SessionOption {
	return func(s *Session) { s.stages = append([]Stage(nil), stages...) }
}

// WithTimings overrides every non-zero field of timings.
func WithTimings(timings Timings) SessionOption {
	return func(s *Session) {
		if timings.WatchdogTimeout > 0 {
			s.timings.WatchdogTimeout = timings.WatchdogTimeout
		}
		if timings.SpeakingHold > 0 {
			s.timings.SpeakingHold = timings.SpeakingHold
		}
		if timings.ProactiveDelay > 0 {
			s.timings.ProactiveDelay = timings.ProactiveDelay
		}
		if timings.SearchTimeout > 0 {
			s.timings.SearchTimeout = timings.SearchTimeout
		}
	}
}

func WithGreeting(greeting string) SessionOption {
	return func(s *Session) { s.greeting = greeting }
}

// WithProactiveTask sets the task proposed after Start. A nil task disables
// the proactive suggestion.
func WithProactiveTask(task *interaction.ProactiveTask) SessionOption {
	return func(s *Session) {
		if task == nil {
			s.proactiveTask = nil
			return
		}
		snapshot := *task
		s.proactiveTask = func() *interaction.ProactiveTask {
			proposed := snapshot
			return &proposed
		}
	}
}

func WithConfig(config interaction.Config) SessionOption {
	return func(s *Session) {
		if config.WakeWord == "" {
			config.WakeWord = interaction.DefaultWakeWord
		}
		s.config = config
	}
}

func WithWakeWord(wakeWord string) SessionOption {
	return func(s *Session) {
		if wakeWord != "" {
			s.config.WakeWord = wakeWord
		}
	}
}

func WithPassiveListening(enabled bool) SessionOption {
	return func(s *Session) { s.config.PassiveListening = enabled }
}

// WithClock sets the clock used for turn timestamps and every timer.
func WithClock(clock flows.Clock) SessionOption {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithEventHandler registers a handler for session events. Handlers run on a
// dedicated goroutine in emission order and may call back into the session.
func WithEventHandler(handler EventHandler) SessionOption {
	return func(s *Session) {
		if handler != nil {
			s.handlers = append(s.handlers, handler)
		}
	}
}
