package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Prev       key.Binding
	Next       key.Binding
	Enter      key.Binding
	Back       key.Binding
	Rescan     key.Binding
	ClearCache key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "up", "k", "h"),
			key.WithHelp("←/↑", "previous block"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "down", "j", "l", "tab"),
			key.WithHelp("→/↓", "next block"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "drill down"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "esc"),
			key.WithHelp("backspace", "up / cancel"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		ClearCache: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear cache"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
