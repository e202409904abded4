package orchestration

import (
	"errors"
	"fmt"
)

var (
	ErrRecognitionFailure = errors.New("speech recognition failed")
	ErrSearchTimeout      = errors.New("search timed out")
	ErrSearchBackend      = errors.New("search backend failed")

	ErrNoActiveTask  = errors.New("no proactive task is shown")
	ErrEmptyWakeWord = errors.New("wake word must not be empty")
	ErrSessionClosed = errors.New("session closed")
)

// InteractionError is a collaborator failure that reverted the session to
// standby. Kind is one of ErrRecognitionFailure, ErrSearchTimeout or
// ErrSearchBackend.
type InteractionError struct {
	Kind error
	Err  error
}

func newInteractionError(kind, err error) *InteractionError {
	return &InteractionError{Kind: kind, Err: err}
}

func (e *InteractionError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *InteractionError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// userMessage is the assistant turn appended to the conversation for err.
func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrRecognitionFailure):
		return "I couldn't make out what you said. Please try again."
	case errors.Is(err, ErrSearchTimeout):
		return "The search took too long and was abandoned. Please try again."
	case errors.Is(err, ErrSearchBackend):
		return "I couldn't reach the data sources for that request."
	default:
		return "Something went wrong while handling that request."
	}
}
