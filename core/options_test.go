package orchestration

import (
	"testing"
	"time"

	"github.com/koscakluka/astra/core/interaction"
	"github.com/koscakluka/astra/core/scenario"
)

func TestNewSessionRunsDefaultScenario(t *testing.T) {
	s := NewSession()
	defer s.Close()

	defaults := scenario.Default()
	if s.greeting != defaults.Greeting {
		t.Fatalf("expected default greeting, got %q", s.greeting)
	}
	if len(s.stages) != len(defaults.Stages) {
		t.Fatalf("expected %d stages, got %d", len(defaults.Stages), len(s.stages))
	}
	if s.timings.WatchdogTimeout != 10*time.Second {
		t.Fatalf("expected 10s watchdog, got %s", s.timings.WatchdogTimeout)
	}
	if s.proactiveTask == nil {
		t.Fatalf("expected the default proactive task")
	}
}

func TestWithTimingsKeepsZeroFields(t *testing.T) {
	s := NewSession(WithTimings(Timings{SpeakingHold: time.Second}))
	defer s.Close()

	if s.timings.SpeakingHold != time.Second {
		t.Fatalf("expected speaking hold override, got %s", s.timings.SpeakingHold)
	}
	if s.timings.WatchdogTimeout != 10*time.Second {
		t.Fatalf("expected watchdog default to survive, got %s", s.timings.WatchdogTimeout)
	}
}

func TestWithConfigFillsEmptyWakeWord(t *testing.T) {
	s := NewSession(WithConfig(interaction.Config{PassiveListening: true}))
	defer s.Close()

	config := s.Config()
	if config.WakeWord != interaction.DefaultWakeWord || !config.PassiveListening {
		t.Fatalf("unexpected config %+v", config)
	}
}

func TestWithProactiveTaskNilDisablesSuggestion(t *testing.T) {
	s := NewSession(WithProactiveTask(nil))
	defer s.Close()

	if s.proactiveTask != nil {
		t.Fatalf("expected no proactive task")
	}
}

func TestWithProactiveTaskCopiesTask(t *testing.T) {
	task := &interaction.ProactiveTask{Title: "Original"}
	s := NewSession(WithProactiveTask(task))
	defer s.Close()

	task.Title = "Changed"
	if proposed := s.proactiveTask(); proposed.Title != "Original" {
		t.Fatalf("expected option to copy the task, got %q", proposed.Title)
	}
}

func TestNilCollaboratorsAreIgnored(t *testing.T) {
	s := NewSession(WithSpeechToText(nil), WithSearcher(nil), WithClock(nil), WithEventHandler(nil))
	defer s.Close()

	if s.speechToText == nil || s.searcher == nil || s.clock == nil {
		t.Fatalf("expected nil collaborators to keep the defaults")
	}
	if len(s.handlers) != 0 {
		t.Fatalf("expected nil handler to be skipped")
	}
}
