package orchestration

import "github.com/koscakluka/astra/core/interaction"

// Phase is the session state together with the data that only exists in that
// state. Exactly one phase is active at a time.
type Phase interface {
	OrbState() interaction.OrbState
	isPhase()
}

type Standby struct{}

// Listening holds the transcript buffer filled by speech recognition.
type Listening struct {
	Transcript string
}

// Processing holds the query handed to the search pipeline and the label of
// the stage currently running.
type Processing struct {
	Query  string
	Status string
}

// Speaking holds the response the assistant is presenting.
type Speaking struct {
	Response string
}

func (Standby) OrbState() interaction.OrbState    { return interaction.OrbStateStandby }
func (Listening) OrbState() interaction.OrbState  { return interaction.OrbStateListening }
func (Processing) OrbState() interaction.OrbState { return interaction.OrbStateProcessing }
func (Speaking) OrbState() interaction.OrbState   { return interaction.OrbStateSpeaking }

func (Standby) isPhase()    {}
func (Listening) isPhase()  {}
func (Processing) isPhase() {}
func (Speaking) isPhase()   {}
