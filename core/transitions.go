package orchestration

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/koscakluka/astra/core/events"
)

// transition is the only place the session phase changes state. It runs the
// exit effects of the current phase, then the entry effects of next.
//
// Must be called with s.mu held.
func (s *Session) transition(next Phase, reason string) {
	prev := s.phase
	from, to := prev.OrbState(), next.OrbState()

	switch phase := prev.(type) {
	case Listening:
		s.recognition.Cancel()
		if phase.Transcript != "" {
			s.emit(events.NewTranscriptUpdated("", s.stamp()))
		}
	case Processing:
		// The pipeline run stays alive into speaking: it owns the hold timer.
		if _, speaking := next.(Speaking); !speaking {
			s.pipeline.Cancel()
		}
		if phase.Status != "" {
			s.emit(events.NewPipelineStatusUpdated("", s.stamp()))
		}
	case Speaking:
		s.pipeline.Cancel()
	}

	s.phase = next
	s.emit(events.NewOrbStateChanged(from, to, reason, s.stamp()))
	logger.InfoContext(s.baseContext, "orb state changed", "from", string(from), "to", string(to), "reason", reason)
	trace.SpanFromContext(s.baseContext).AddEvent("orb state changed", trace.WithAttributes(
		attribute.String("orb_state.from", string(from)),
		attribute.String("orb_state.to", string(to)),
		attribute.String("orb_state.reason", reason),
	))

	switch phase := next.(type) {
	case Standby:
		s.watchdog.Cancel()
	case Listening:
		s.phase = Listening{}
		s.emit(events.NewTranscriptUpdated("", s.stamp()))
		s.armWatchdog()
		s.startRecognition()
	case Processing:
		s.armWatchdog()
		s.startPipeline(phase.Query)
	case Speaking:
		s.watchdog.Cancel()
	}
}
