package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Mic      key.Binding
	WakeWord key.Binding
	Passive  key.Binding
	Approve  key.Binding
	Dismiss  key.Binding
	Standby  key.Binding
	Config   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Mic: key.NewBinding(
			key.WithKeys(" ", "m"),
			key.WithHelp("space", "mic"),
		),
		WakeWord: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "say wake word"),
		),
		Passive: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "passive listening"),
		),
		Approve: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "approve task"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss task"),
		),
		Standby: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "standby"),
		),
		Config: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "wake word"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mic, k.WakeWord, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mic, k.WakeWord, k.Standby},
		{k.Approve, k.Dismiss},
		{k.Config, k.Passive, k.Help, k.Quit},
	}
}
