package orchestration

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"

	"github.com/koscakluka/astra/core/events"
	"github.com/koscakluka/astra/core/flows"
)

// startRecognition supersedes any previous recognition run and streams
// partial transcripts into the buffer while the session is listening.
//
// Must be called with s.mu held.
func (s *Session) startRecognition() {
	run := s.recognition.Start(s.baseContext)
	speechToText := s.speechToText

	s.goWorker("speech recognition", run, func(ctx context.Context) error {
		ctx, span := tracer.Start(ctx, "speech recognition")
		defer span.End()

		err := speechToText.Transcribe(ctx, func(transcript string) {
			s.applyPartialTranscript(run, transcript)
		})
		if err != nil && ctx.Err() == nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}, func(err error) { s.onRecognitionEnded(run, err) })
}

func (s *Session) applyPartialTranscript(run *flows.Run, transcript string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A superseded or cancelled producer must never write the buffer.
	if s.closed || !run.Current() {
		return
	}
	listening, ok := s.phase.(Listening)
	if !ok || listening.Transcript == transcript {
		return
	}

	s.phase = Listening{Transcript: transcript}
	s.emit(events.NewTranscriptUpdated(transcript, s.stamp()))
}

func (s *Session) onRecognitionEnded(run *flows.Run, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !run.Current() {
		return
	}
	if _, ok := s.phase.(Listening); !ok {
		return
	}

	if err == nil {
		logger.DebugContext(s.baseContext, "speech recognition finished")
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}

	s.fail(newInteractionError(ErrRecognitionFailure, err))
}
