package state

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the shop screen bindings.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Add         key.Binding
	Remove      key.Binding
	TogglePanel key.Binding
	Focus       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "enter", "+"),
			key.WithHelp("a/enter", "add"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "-"),
			key.WithHelp("x/-", "remove"),
		),
		TogglePanel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cart"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
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

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Remove, k.TogglePanel, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Focus},
		{k.Add, k.Remove, k.TogglePanel},
		{k.Help, k.Quit},
	}
}
