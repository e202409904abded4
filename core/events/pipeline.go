package events

import "github.com/koscakluka/astra/core/interaction"

const (
	// KindPipelineStatusUpdated identifies a search stage change.
	KindPipelineStatusUpdated Kind = "pipeline.status_updated"
	// KindDataArtifactUpdated identifies a replaced data artifact.
	KindDataArtifactUpdated Kind = "data_artifact.updated"
)

// PipelineStatusUpdated carries the current search stage label.
type PipelineStatusUpdated struct {
	Base
	Status string
}

// NewPipelineStatusUpdated creates a pipeline status updated event.
func NewPipelineStatusUpdated(status string, opts ...Option) PipelineStatusUpdated {
	return PipelineStatusUpdated{Base: newBase(KindPipelineStatusUpdated, opts), Status: status}
}

// DataArtifactUpdated carries the artifact produced by the last search.
type DataArtifactUpdated struct {
	Base
	Artifact interaction.DataArtifact
}

// NewDataArtifactUpdated creates a data artifact updated event.
func NewDataArtifactUpdated(artifact interaction.DataArtifact, opts ...Option) DataArtifactUpdated {
	return DataArtifactUpdated{Base: newBase(KindDataArtifactUpdated, opts), Artifact: artifact}
}
