package events

import "github.com/koscakluka/astra/core/interaction"

// KindOrbStateChanged identifies an orb state transition.
const KindOrbStateChanged Kind = "orb_state.changed"

// OrbStateChanged carries an orb state transition.
type OrbStateChanged struct {
	Base
	From   interaction.OrbState
	To     interaction.OrbState
	Reason string
}

// NewOrbStateChanged creates an orb state changed event.
func NewOrbStateChanged(from, to interaction.OrbState, reason string, opts ...Option) OrbStateChanged {
	return OrbStateChanged{Base: newBase(KindOrbStateChanged, opts), From: from, To: to, Reason: reason}
}
