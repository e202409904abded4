package orchestration

import (
	"testing"
	"time"

	"github.com/koscakluka/astra/core/interaction"
)

func TestConversationAppendKeepsOrder(t *testing.T) {
	c := newConversation()
	at := time.Date(2024, 10, 3, 21, 4, 5, 0, time.UTC)

	first := c.append(interaction.RoleUser, "hello", at)
	second := c.append(interaction.RoleAssistant, "hi", at.Add(time.Second))

	if first.ID == second.ID {
		t.Fatalf("expected unique turn IDs")
	}
	if first.Timestamp != "21:04:05" || second.Timestamp != "21:04:06" {
		t.Fatalf("unexpected timestamps %q, %q", first.Timestamp, second.Timestamp)
	}

	history := c.History()
	if len(history) != 2 || history[0].Content != "hello" || history[1].Content != "hi" {
		t.Fatalf("unexpected history %+v", history)
	}

	history[0].Content = "edited"
	if c.History()[0].Content != "hello" {
		t.Fatalf("expected history to be a copy")
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 turns, got %d", c.Len())
	}
}

func TestSessionUsesClockForTurnTimestamps(t *testing.T) {
	now := time.Date(2024, 10, 3, 8, 30, 0, 0, time.Local)
	s, _ := newTestSession(t, WithClock(fixedClock{now: now}), WithGreeting("Good morning."))

	s.Start(t.Context())

	conversation := s.Conversation()
	if len(conversation) != 1 {
		t.Fatalf("expected greeting turn, got %+v", conversation)
	}
	if conversation[0].Timestamp != "08:30:00" || !conversation[0].CreatedAt.Equal(now) {
		t.Fatalf("unexpected greeting time %+v", conversation[0])
	}
}
