package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	// Navigation
	Countdown key.Binding
	History   key.Binding
	Settings  key.Binding

	// Countdown controls
	Start  key.Binding
	Pause  key.Binding
	Resume key.Binding
	Stop   key.Binding
	Reset  key.Binding
	Mode   key.Binding

	// Form
	NextField key.Binding
	PrevField key.Binding

	// History
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Yes    key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Countdown: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "countdown")),
	History:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
	Settings:  key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Start:     key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "start")),
	Pause:     key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
	Resume:    key.NewBinding(key.WithKeys("r", " "), key.WithHelp("r", "resume")),
	Stop:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
	Reset:     key.NewBinding(key.WithKeys("R", "ctrl+r"), key.WithHelp("R", "reset")),
	Mode:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "switch mode")),
	NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "edit")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "clear history")),
	Yes:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
}
