package orchestration

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/koscakluka/astra/core/interaction"
)

const turnTimestampLayout = "15:04:05"

// conversation is the append-only conversation log. Turns keep insertion
// order and are never edited or removed.
type conversation struct {
	mu    sync.RWMutex
	turns []interaction.Turn
}

func newConversation() *conversation {
	return &conversation{}
}

func (c *conversation) append(role interaction.Role, content string, at time.Time) interaction.Turn {
	turn := interaction.Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: at.Format(turnTimestampLayout),
		CreatedAt: at,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, turn)
	return turn
}

// History returns a copy of the log, oldest first.
func (c *conversation) History() []interaction.Turn {
	c.mu.RLock()
	defer c.mu.RUnlock()

	history := make([]interaction.Turn, len(c.turns))
	copy(history, c.turns)
	return history
}

func (c *conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.turns)
}
