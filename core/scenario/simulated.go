package scenario

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/koscakluka/astra/core/interaction"
)

// Recognizer reveals a fixed transcript one rune per interval, mimicking a
// streaming speech-to-text provider.
type Recognizer struct {
	Text     string
	Interval time.Duration
}

func NewRecognizer(s Scenario) Recognizer {
	return Recognizer{Text: s.Transcript, Interval: s.Timings.RevealInterval.Std()}
}

// Transcribe calls onPartial with progressively longer prefixes of Text until
// the whole text is revealed or ctx is done.
func (r Recognizer) Transcribe(ctx context.Context, onPartial func(transcript string)) error {
	runes := []rune(r.Text)
	if len(runes) == 0 {
		return nil
	}

	interval := r.Interval
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 1; i <= len(runes); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		onPartial(string(runes[:i]))
	}
	return nil
}

// Searcher answers every query with the scenario's canned response and a
// freshly built artifact.
type Searcher struct {
	Response string
	Artifact Artifact
	Latency  time.Duration
}

func NewSearcher(s Scenario) Searcher {
	return Searcher{Response: s.Response, Artifact: s.Artifact, Latency: s.Timings.SearchLatency.Std()}
}

func (s Searcher) Search(ctx context.Context, query string) (interaction.SearchResult, error) {
	if s.Latency > 0 {
		timer := time.NewTimer(s.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return interaction.SearchResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	artifact := interaction.DataArtifact{
		ID:      uuid.NewString(),
		Source:  s.Artifact.Source,
		Query:   s.Artifact.Query,
		Summary: s.Artifact.Summary,
	}
	if artifact.Query == "" {
		artifact.Query = query
	}
	for _, point := range s.Artifact.DataPoints {
		artifact.DataPoints = append(artifact.DataPoints, interaction.DataPoint{Label: point.Label, Value: point.Value})
	}

	return interaction.SearchResult{Response: s.Response, Artifact: artifact}, nil
}
