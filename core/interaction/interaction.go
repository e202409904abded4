// Package interaction holds the data model shared by the session engine, its
// event contract and the scripted scenario.
package interaction

import (
	"time"

	"github.com/jinzhu/copier"
)

// OrbState is the assistant interaction phase shown by the orb.
type OrbState string

const (
	OrbStateStandby    OrbState = "standby"
	OrbStateListening  OrbState = "listening"
	OrbStateProcessing OrbState = "processing"
	OrbStateSpeaking   OrbState = "speaking"
)

func (s OrbState) String() string { return string(s) }

// Valid reports whether s is one of the four known orb states.
func (s OrbState) Valid() bool {
	switch s {
	case OrbStateStandby, OrbStateListening, OrbStateProcessing, OrbStateSpeaking:
		return true
	}
	return false
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single entry of the conversation log. Turns are never modified
// after they are appended.
type Turn struct {
	ID      string
	Role    Role
	Content string
	// Timestamp is the display string captured at append time.
	Timestamp string
	CreatedAt time.Time
}

type TaskCategory string

const (
	TaskCategoryMeeting  TaskCategory = "meeting"
	TaskCategoryData     TaskCategory = "data"
	TaskCategoryReminder TaskCategory = "reminder"
)

// ProactiveTask is a transient suggestion raised by the assistant. It lives
// until the user approves or dismisses it.
type ProactiveTask struct {
	ID          string
	Title       string
	Description string
	Category    TaskCategory
	DisplayTime string
}

type DataPoint struct {
	Label string
	Value string
}

// DataArtifact is the display-only result of a search. Each search replaces
// the previous artifact wholesale.
type DataArtifact struct {
	ID         string
	Source     string
	Query      string
	Summary    string
	DataPoints []DataPoint
}

// Clone returns a deep copy of the artifact.
func (a DataArtifact) Clone() DataArtifact {
	var clone DataArtifact
	if err := copier.CopyWithOption(&clone, &a, copier.Option{DeepCopy: true}); err != nil {
		clone = a
		clone.DataPoints = append([]DataPoint(nil), a.DataPoints...)
	}
	return clone
}

const DefaultWakeWord = "JARVIS"

// Config is the process-lifetime client configuration. It is never persisted.
type Config struct {
	WakeWord         string
	PassiveListening bool
}

func DefaultConfig() Config {
	return Config{WakeWord: DefaultWakeWord}
}

// SearchResult is what a search backend returns for a query: the text the
// assistant answers with and the artifact to display.
type SearchResult struct {
	Response string
	Artifact DataArtifact
}
