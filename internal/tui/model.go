// Package tui renders an assistant session in the terminal: the orb, the
// live transcript, the pipeline status, the data and task cards and the
// conversation feed.
package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	orchestration "github.com/koscakluka/astra/core"
	"github.com/koscakluka/astra/core/events"
	"github.com/koscakluka/astra/core/interaction"
)

const animationInterval = 120 * time.Millisecond

// Session is the part of the session engine the UI drives.
type Session interface {
	ToggleMic() interaction.OrbState
	Standby()
	WakeWordDetected() bool
	ApproveTask() error
	DismissTask() error
	SetWakeWord(wakeWord string) error
	SetPassiveListening(enabled bool)
	Snapshot() orchestration.Snapshot
}

type animationTickMsg time.Time

type Model struct {
	session Session
	bridge  *EventBridge

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	feed    viewport.Model
	input   textinput.Model

	snapshot orchestration.Snapshot
	lastErr  string
	editing  bool
	frame    int
	ready    bool
	width    int
	height   int
}

func New(session Session, bridge *EventBridge) Model {
	input := textinput.New()
	input.Placeholder = interaction.DefaultWakeWord
	input.CharLimit = 32
	input.Prompt = "Wake word: "

	return Model{
		session:  session,
		bridge:   bridge,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		feed:     viewport.New(60, 8),
		input:    input,
		snapshot: session.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bridge.wait(), m.spinner.Tick, animate())
}

func animate() tea.Cmd {
	return tea.Tick(animationInterval, func(t time.Time) tea.Msg { return animationTickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.feed.Width = feedWidth(msg.Width)
		m.feed.Height = feedHeight(msg.Height)
		m.ready = true
		m.refreshFeed()
		return m, nil

	case sessionEventMsg:
		if failed, ok := msg.event.(events.InteractionFailed); ok {
			m.lastErr = failed.Message
		}
		if changed, ok := msg.event.(events.OrbStateChanged); ok && changed.To == interaction.OrbStateListening {
			m.lastErr = ""
		}
		m.refresh()
		return m, m.bridge.wait()

	case animationTickMsg:
		m.frame++
		return m, animate()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.editing {
			return m.updateWakeWordInput(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.feed, cmd = m.feed.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Mic):
		m.session.ToggleMic()
	case key.Matches(msg, m.keys.WakeWord):
		if !m.session.WakeWordDetected() {
			m.lastErr = "Wake word only works in passive listening mode while on standby."
		}
	case key.Matches(msg, m.keys.Passive):
		m.session.SetPassiveListening(!m.snapshot.Config.PassiveListening)
	case key.Matches(msg, m.keys.Approve):
		m.reportTaskError(m.session.ApproveTask())
	case key.Matches(msg, m.keys.Dismiss):
		m.reportTaskError(m.session.DismissTask())
	case key.Matches(msg, m.keys.Standby):
		m.session.Standby()
	case key.Matches(msg, m.keys.Config):
		m.editing = true
		m.input.SetValue(m.snapshot.Config.WakeWord)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		var cmd tea.Cmd
		m.feed, cmd = m.feed.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, nil
}

func (m Model) updateWakeWordInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		if err := m.session.SetWakeWord(m.input.Value()); err != nil {
			m.lastErr = err.Error()
			return m, nil
		}
		m.editing = false
		m.input.Blur()
		m.lastErr = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) reportTaskError(err error) {
	switch {
	case err == nil:
		m.lastErr = ""
	case errors.Is(err, orchestration.ErrNoActiveTask):
		m.lastErr = "There is no suggestion to act on."
	default:
		m.lastErr = err.Error()
	}
}

func (m *Model) refresh() {
	previous := len(m.snapshot.Conversation)
	m.snapshot = m.session.Snapshot()
	if len(m.snapshot.Conversation) != previous {
		m.refreshFeed()
	}
}

func (m *Model) refreshFeed() {
	atBottom := m.feed.AtBottom()
	m.feed.SetContent(renderFeed(m.snapshot.Conversation, m.feed.Width))
	if atBottom || !m.ready {
		m.feed.GotoBottom()
	}
}

func feedWidth(width int) int {
	if width <= 0 {
		return 60
	}
	return max(20, min(width-4, 80))
}

func feedHeight(height int) int {
	return max(4, height/3)
}
