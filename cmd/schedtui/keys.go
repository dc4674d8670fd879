package main

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap mirrors the teacher TUI's per-focus key tables, collapsed to
// the handful of bindings a read-only schedule viewer needs.
type keyMap struct {
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev cycle")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next cycle")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}
