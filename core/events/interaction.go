package events

import "github.com/koscakluka/astra/core/interaction"

const (
	// KindInteractionFailed identifies a collaborator failure.
	KindInteractionFailed Kind = "interaction.failed"
	// KindConfigChanged identifies a configuration update.
	KindConfigChanged Kind = "config.changed"
)

// InteractionFailed carries the failure that reverted the session to standby.
type InteractionFailed struct {
	Base
	Err error
	// Message is the user-visible text appended to the conversation.
	Message string
}

// NewInteractionFailed creates an interaction failed event.
func NewInteractionFailed(err error, message string, opts ...Option) InteractionFailed {
	return InteractionFailed{Base: newBase(KindInteractionFailed, opts), Err: err, Message: message}
}

// ConfigChanged carries the configuration after the change.
type ConfigChanged struct {
	Base
	Config interaction.Config
}

// NewConfigChanged creates a config changed event.
func NewConfigChanged(config interaction.Config, opts ...Option) ConfigChanged {
	return ConfigChanged{Base: newBase(KindConfigChanged, opts), Config: config}
}
