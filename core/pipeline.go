package orchestration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/koscakluka/astra/core/events"
	"github.com/koscakluka/astra/core/flows"
	"github.com/koscakluka/astra/core/interaction"
)

// startPipeline supersedes any running pipeline and runs the search stages
// for query.
//
// Must be called with s.mu held.
func (s *Session) startPipeline(query string) {
	run := s.pipeline.Start(s.baseContext)
	stages := append([]Stage(nil), s.stages...)
	searcher := s.searcher
	searchTimeout := s.timings.SearchTimeout

	s.goWorker("search pipeline", run, func(ctx context.Context) error {
		ctx, span := tracer.Start(ctx, "search pipeline", trace.WithAttributes(attribute.Int("pipeline.stages", len(stages))))
		defer span.End()

		for _, stage := range stages {
			if !s.applyPipelineStatus(run, stage.Label) {
				return context.Canceled
			}
			span.AddEvent("stage started", trace.WithAttributes(attribute.String("pipeline.stage", stage.Label)))
			if err := run.Sleep(stage.Duration); err != nil {
				return err
			}
		}

		result, err := search(ctx, searcher, query, searchTimeout)
		if err != nil {
			if ctx.Err() == nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return err
		}

		s.completeSearch(run, result)
		return nil
	}, func(err error) { s.onPipelineEnded(run, err) })
}

// search queries the backend and classifies its failure. It returns once
// searchCtx is done even if the backend keeps running.
func search(ctx context.Context, searcher Searcher, query string, timeout time.Duration) (interaction.SearchResult, error) {
	searchCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		result interaction.SearchResult
		err    error
	}
	// Buffered so a backend that ignores searchCtx can still finish later.
	done := make(chan outcome, 1)
	go func() {
		result, err := searcher.Search(searchCtx, query)
		done <- outcome{result: result, err: err}
	}()

	var result interaction.SearchResult
	var err error
	select {
	case out := <-done:
		result, err = out.result, out.err
	case <-searchCtx.Done():
		err = searchCtx.Err()
	}

	switch {
	case err == nil:
		return result, nil
	case ctx.Err() != nil:
		return interaction.SearchResult{}, ctx.Err()
	case errors.Is(searchCtx.Err(), context.DeadlineExceeded):
		return interaction.SearchResult{}, newInteractionError(ErrSearchTimeout, fmt.Errorf("no result within %s: %w", timeout, err))
	default:
		return interaction.SearchResult{}, newInteractionError(ErrSearchBackend, err)
	}
}

func (s *Session) applyPipelineStatus(run *flows.Run, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !run.Current() {
		return false
	}
	processing, ok := s.phase.(Processing)
	if !ok {
		return false
	}

	processing.Status = status
	s.phase = processing
	s.emit(events.NewPipelineStatusUpdated(status, s.stamp()))
	return true
}

func (s *Session) completeSearch(run *flows.Run, result interaction.SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !run.Current() {
		return
	}
	if _, ok := s.phase.(Processing); !ok {
		return
	}

	artifact := result.Artifact.Clone()
	if artifact.ID == "" {
		artifact.ID = newArtifactID()
	}
	s.artifact = &artifact

	response := result.Response
	if response == "" {
		response = "Here is what I found."
	}
	s.appendTurn(interaction.RoleAssistant, response)
	s.emit(events.NewDataArtifactUpdated(artifact.Clone(), s.stamp()))
	s.transition(Speaking{Response: response}, "search completed")

	run.AfterFunc(s.timings.SpeakingHold, func() { s.onSpeakingHoldElapsed(run) })
}

func (s *Session) onSpeakingHoldElapsed(run *flows.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !run.Current() {
		return
	}
	if _, ok := s.phase.(Speaking); !ok {
		return
	}
	if !s.config.PassiveListening {
		return
	}

	s.transition(Standby{}, "response delivered")
}

func (s *Session) onPipelineEnded(run *flows.Run, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !run.Current() {
		return
	}
	if _, ok := s.phase.(Processing); !ok {
		return
	}

	s.fail(err)
}

// fail reverts an in-flight interaction to standby and tells the user why.
//
// Must be called with s.mu held.
func (s *Session) fail(err error) {
	message := userMessage(err)

	span := trace.SpanFromContext(s.baseContext)
	span.RecordError(err)
	logger.ErrorContext(s.baseContext, "interaction failed", "state", string(s.phase.OrbState()), "err", err)

	s.emit(events.NewInteractionFailed(err, message, s.stamp()))
	s.appendTurn(interaction.RoleAssistant, message)
	s.transition(Standby{}, "failure")
}
