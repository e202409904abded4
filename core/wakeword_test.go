package orchestration

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/koscakluka/astra/core/events"
	"github.com/koscakluka/astra/core/interaction"
)

func TestWakeWordRequiresPassiveListening(t *testing.T) {
	s, _ := newTestSession(t)

	if s.WakeWordDetected() {
		t.Fatalf("expected wake word to be ignored without passive listening")
	}
	if state := s.State(); state != interaction.OrbStateStandby {
		t.Fatalf("expected standby, got %q", state)
	}
}

func TestWakeWordStartsListening(t *testing.T) {
	s, recorder := newTestSession(t,
		WithPassiveListening(true),
		WithSpeechToText(&controlledSpeechToText{}),
	)

	if !s.WakeWordDetected() {
		t.Fatalf("expected wake word to start listening")
	}
	if state := s.State(); state != interaction.OrbStateListening {
		t.Fatalf("expected listening, got %q", state)
	}

	conversation := s.Conversation()
	if len(conversation) != 1 || !strings.Contains(conversation[0].Content, interaction.DefaultWakeWord) {
		t.Fatalf("expected wake word detection turn, got %+v", conversation)
	}
	if s.WakeWordDetected() {
		t.Fatalf("expected wake word to be ignored outside standby")
	}

	waitForCondition(t, time.Second, "wake word event", func() bool {
		return recorder.count(events.KindWakeWordDetected) == 1
	})
}

func TestHearMatchesConfiguredWakeWord(t *testing.T) {
	s, _ := newTestSession(t,
		WithPassiveListening(true),
		WithSpeechToText(&controlledSpeechToText{}),
		WithWakeWord("Friday"),
	)

	if s.Hear("hey jarvis") {
		t.Fatalf("expected default wake word to no longer match")
	}
	if !s.Hear("Okay, FRIDAY!") {
		t.Fatalf("expected configured wake word to match")
	}
}

func TestContainsWakeWord(t *testing.T) {
	tests := []struct {
		phrase   string
		wakeWord string
		want     bool
	}{
		{phrase: "hey jarvis", wakeWord: "JARVIS", want: true},
		{phrase: "Jarvis, wake up.", wakeWord: "jarvis", want: true},
		{phrase: "jarvisland", wakeWord: "jarvis", want: false},
		{phrase: "ok  hey   computer now", wakeWord: "hey computer", want: true},
		{phrase: "anything", wakeWord: "   ", want: false},
		{phrase: "", wakeWord: "jarvis", want: false},
	}

	for _, tt := range tests {
		if got := containsWakeWord(tt.phrase, tt.wakeWord); got != tt.want {
			t.Fatalf("containsWakeWord(%q, %q) = %t, want %t", tt.phrase, tt.wakeWord, got, tt.want)
		}
	}
}

func TestSetWakeWord(t *testing.T) {
	s, recorder := newTestSession(t)

	if err := s.SetWakeWord("   "); !errors.Is(err, ErrEmptyWakeWord) {
		t.Fatalf("expected ErrEmptyWakeWord, got %v", err)
	}
	if err := s.SetWakeWord("  Friday "); err != nil {
		t.Fatalf("set wake word: %v", err)
	}
	if got := s.Config().WakeWord; got != "Friday" {
		t.Fatalf("expected trimmed wake word, got %q", got)
	}
	if err := s.SetWakeWord("Friday"); err != nil {
		t.Fatalf("set same wake word: %v", err)
	}
	s.SetPassiveListening(true)

	waitForCondition(t, time.Second, "config events", func() bool {
		return recorder.count(events.KindConfigChanged) == 2
	})
	time.Sleep(20 * time.Millisecond)
	if n := recorder.count(events.KindConfigChanged); n != 2 {
		t.Fatalf("expected unchanged config not to emit, got %d events", n)
	}
}
