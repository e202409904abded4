package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koscakluka/astra/core/events"
	"github.com/koscakluka/astra/core/interaction"
)

func TestEventLoggerWritesOneRecordPerEvent(t *testing.T) {
	var buf bytes.Buffer
	handle := EventLogger(New(&buf, slog.LevelInfo, false))

	handle(events.NewOrbStateChanged(interaction.OrbStateStandby, interaction.OrbStateListening, "microphone on"))
	handle(events.NewTranscriptUpdated("hidden below info"))
	handle(events.NewInteractionFailed(errors.New("connection refused"), "I couldn't reach the data sources."))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], string(events.KindOrbStateChanged))
	assert.Contains(t, lines[0], "to=listening")
	assert.Contains(t, lines[1], "connection refused")
}

func TestSetupFileCreatesLogFile(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	path := filepath.Join(t.TempDir(), "logs", "astra.log")
	closer, err := SetupFile(path, slog.LevelDebug)
	require.NoError(t, err)
	t.Cleanup(func() { closer.Close() })

	slog.Debug("written to file")
	assert.FileExists(t, path)
}
