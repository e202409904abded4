package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/koscakluka/astra/core/interaction"
)

var orbArt = []string{
	"   .-~~~-.   ",
	"  /       \\  ",
	" |    %s    | ",
	"  \\       /  ",
	"   '-~~~-'   ",
}

var orbGlyphs = map[interaction.OrbState][]string{
	interaction.OrbStateStandby:    {"·", "·", "•", "·"},
	interaction.OrbStateListening:  {"◉", "◎", "○", "◎"},
	interaction.OrbStateProcessing: {"◐", "◓", "◑", "◒"},
	interaction.OrbStateSpeaking:   {"●", "◉", "●", "◎"},
}

var waveformBars = []rune("▁▂▃▄▅▆▇█")

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if card := m.renderCards(); card != "" {
		b.WriteString(card)
		b.WriteString("\n")
	}

	b.WriteString(m.renderOrb())
	b.WriteString("\n")
	b.WriteString(m.renderActivity())
	b.WriteString("\n\n")
	b.WriteString(m.feed.View())
	b.WriteString("\n")

	if m.editing {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.lastErr != "" {
		b.WriteString(errorStyle.Render(m.lastErr))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderHeader() string {
	passive := "OFF"
	if m.snapshot.Config.PassiveListening {
		passive = "ON"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render("● ASTRA OS"),
		mutedStyle.Render(fmt.Sprintf("   WAKE: %s   PASSIVE: %s", m.snapshot.Config.WakeWord, passive)),
	)
}

func (m Model) renderOrb() string {
	state := m.snapshot.State
	glyphs := orbGlyphs[state]
	glyph := glyphs[m.frame%len(glyphs)]

	style := lipgloss.NewStyle().Foreground(orbColor(state))
	if state == interaction.OrbStateStandby {
		style = style.Faint(true)
	}

	lines := make([]string, len(orbArt))
	for i, line := range orbArt {
		if strings.Contains(line, "%s") {
			line = fmt.Sprintf(line, glyph)
		}
		lines[i] = style.Render(line)
	}
	lines = append(lines, style.Bold(true).Render(strings.ToUpper(state.String())))

	return lipgloss.PlaceHorizontal(feedWidth(m.width), lipgloss.Center, lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) renderActivity() string {
	switch m.snapshot.State {
	case interaction.OrbStateListening:
		transcript := m.snapshot.Transcript
		if transcript == "" {
			transcript = mutedStyle.Render("Listening...")
		}
		return waveform(m.frame, 24) + "\n" + wordwrap.String(transcript, feedWidth(m.width))
	case interaction.OrbStateProcessing:
		status := m.snapshot.Status
		if status == "" {
			status = "PROCESSING"
		}
		return m.spinner.View() + " " + statusStyle.Render(status)
	case interaction.OrbStateSpeaking:
		return waveform(m.frame, 24)
	default:
		return mutedStyle.Render("Press space to talk.")
	}
}

func (m Model) renderCards() string {
	var cards []string
	width := feedWidth(m.width)

	if task := m.snapshot.Task; task != nil {
		cards = append(cards, renderTask(*task, width))
	}
	if artifact := m.snapshot.Artifact; artifact != nil {
		cards = append(cards, renderArtifact(*artifact, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderTask(task interaction.ProactiveTask, width int) string {
	body := []string{
		taskTitleStyle.Render(strings.ToUpper(string(task.Category))+"  ") + mutedStyle.Render(task.DisplayTime),
		lipgloss.NewStyle().Bold(true).Render(task.Title),
		wordwrap.String(task.Description, width-4),
		mutedStyle.Render("[a] approve  [d] dismiss"),
	}
	return taskPanelStyle.Width(width).Render(strings.Join(body, "\n"))
}

func renderArtifact(artifact interaction.DataArtifact, width int) string {
	body := []string{
		dataTitleStyle.Render("DATASET GENERATED") + "  " + mutedStyle.Render(artifact.Source),
		fmt.Sprintf("Query: %q", artifact.Query),
		mutedStyle.Render(wordwrap.String(artifact.Summary, width-4)),
	}

	labelWidth := 0
	for _, point := range artifact.DataPoints {
		labelWidth = max(labelWidth, lipgloss.Width(point.Label))
	}
	for _, point := range artifact.DataPoints {
		body = append(body, fmt.Sprintf("%-*s  %s", labelWidth, strings.ToUpper(point.Label), dataValueStyle.Render(point.Value)))
	}

	return dataPanelStyle.Width(width).Render(strings.Join(body, "\n"))
}

func renderFeed(turns []interaction.Turn, width int) string {
	if width <= 0 {
		width = 60
	}

	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n")
		}
		label, style := "SYSTEM_RESPONSE", responseStyle
		if turn.Role == interaction.RoleUser {
			label, style = "COMMAND", commandStyle
		}
		b.WriteString(mutedStyle.Render(label + " // " + turn.Timestamp))
		b.WriteString("\n")
		b.WriteString(style.Render(wordwrap.String(turn.Content, width)))
	}
	return b.String()
}

// waveform draws a pseudo-random level meter that shifts with frame.
func waveform(frame, width int) string {
	bars := make([]rune, width)
	for i := range bars {
		level := (i*7 + frame*3 + (i*frame)%5) % len(waveformBars)
		bars[i] = waveformBars[level]
	}
	return lipgloss.NewStyle().Foreground(primaryColor).Render(string(bars))
}
