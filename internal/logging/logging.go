// Package logging installs the process-wide slog handler and turns session
// events into log records.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"

	"github.com/koscakluka/astra/core/events"
)

// New returns a tint logger writing to w. Colors are only used for
// terminals.
func New(w io.Writer, level slog.Level, color bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !color,
	}))
}

// SetupFile installs a default logger appending to path. The TUI owns the
// terminal, so interactive runs log to a file instead. The returned closer
// releases the file.
func SetupFile(path string, level slog.Level) (io.Closer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	slog.SetDefault(New(file, level, false))
	return file, nil
}

// SetupConsole installs a default logger writing to stderr.
func SetupConsole(level slog.Level) {
	slog.SetDefault(New(os.Stderr, level, true))
}

// EventLogger returns a session event handler that writes one record per
// event to logger.
func EventLogger(logger *slog.Logger) func(events.Event) {
	return func(event events.Event) {
		level, attrs := describe(event)
		logger.LogAttrs(context.Background(), level, string(event.Kind()), attrs...)
	}
}

func describe(event events.Event) (slog.Level, []slog.Attr) {
	switch e := event.(type) {
	case events.OrbStateChanged:
		return slog.LevelInfo, []slog.Attr{
			slog.String("from", string(e.From)),
			slog.String("to", string(e.To)),
			slog.String("reason", e.Reason),
		}
	case events.WakeWordDetected:
		return slog.LevelInfo, []slog.Attr{slog.String("wake_word", e.WakeWord)}
	case events.TranscriptUpdated:
		return slog.LevelDebug, []slog.Attr{slog.String("transcript", e.Transcript)}
	case events.PipelineStatusUpdated:
		return slog.LevelDebug, []slog.Attr{slog.String("status", e.Status)}
	case events.DataArtifactUpdated:
		return slog.LevelInfo, []slog.Attr{
			slog.String("id", e.Artifact.ID),
			slog.String("source", e.Artifact.Source),
			slog.Int("data_points", len(e.Artifact.DataPoints)),
		}
	case events.ConversationTurnAppended:
		return slog.LevelInfo, []slog.Attr{
			slog.String("role", string(e.Turn.Role)),
			slog.String("timestamp", e.Turn.Timestamp),
			slog.String("content", e.Turn.Content),
		}
	case events.ProactiveTaskProposed:
		return slog.LevelInfo, []slog.Attr{
			slog.String("title", e.Task.Title),
			slog.String("category", string(e.Task.Category)),
		}
	case events.ProactiveTaskResolved:
		return slog.LevelInfo, []slog.Attr{
			slog.String("title", e.Task.Title),
			slog.Bool("approved", e.Approved),
		}
	case events.InteractionFailed:
		return slog.LevelError, []slog.Attr{tint.Err(e.Err), slog.String("message", e.Message)}
	case events.ConfigChanged:
		return slog.LevelInfo, []slog.Attr{
			slog.String("wake_word", e.Config.WakeWord),
			slog.Bool("passive_listening", e.Config.PassiveListening),
		}
	default:
		return slog.LevelDebug, nil
	}
}
