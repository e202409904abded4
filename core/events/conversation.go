package events

import "github.com/koscakluka/astra/core/interaction"

// KindConversationTurnAppended identifies a new conversation log entry.
const KindConversationTurnAppended Kind = "conversation.turn_appended"

// ConversationTurnAppended carries the appended turn.
type ConversationTurnAppended struct {
	Base
	Turn interaction.Turn
}

// NewConversationTurnAppended creates a conversation turn appended event.
func NewConversationTurnAppended(turn interaction.Turn, opts ...Option) ConversationTurnAppended {
	return ConversationTurnAppended{Base: newBase(KindConversationTurnAppended, opts), Turn: turn}
}
