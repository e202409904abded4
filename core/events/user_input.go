package events

const (
	// KindWakeWordDetected identifies wake word detection in passive mode.
	KindWakeWordDetected Kind = "wake_word.detected"
	// KindTranscriptUpdated identifies a transcript buffer snapshot.
	KindTranscriptUpdated Kind = "transcript.updated"
)

// WakeWordDetected marks detection of the configured wake word.
type WakeWordDetected struct {
	Base
	WakeWord string
}

// NewWakeWordDetected creates a wake word detected event.
func NewWakeWordDetected(wakeWord string, opts ...Option) WakeWordDetected {
	return WakeWordDetected{Base: newBase(KindWakeWordDetected, opts), WakeWord: wakeWord}
}

// TranscriptUpdated carries the full transcript buffer.
type TranscriptUpdated struct {
	Base
	Transcript string
}

// NewTranscriptUpdated creates a transcript updated event.
func NewTranscriptUpdated(transcript string, opts ...Option) TranscriptUpdated {
	return TranscriptUpdated{Base: newBase(KindTranscriptUpdated, opts), Transcript: transcript}
}
