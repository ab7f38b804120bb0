package taginput

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the key bindings of the widget
type KeyMap struct {
	Commit     key.Binding
	RemoveLast key.Binding
	Next       key.Binding
	Prev       key.Binding
	ChipLeft   key.Binding
	ChipRight  key.Binding
	RemoveChip key.Binding
	Leave      key.Binding
}

// DefaultKeyMap is the default set of key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Commit:     key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter/tab", "add value or highlighted suggestion")),
		RemoveLast: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "remove last value when input is empty")),
		Next:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓/ctrl+n", "next suggestion")),
		Prev:       key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑/ctrl+p", "previous suggestion")),
		ChipLeft:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "focus values")),
		ChipRight:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next value / back to input")),
		RemoveChip: key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("del", "remove focused value")),
		Leave:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to input")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Next, k.RemoveLast}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Commit, k.Next, k.Prev},
		{k.RemoveLast, k.ChipLeft, k.ChipRight, k.RemoveChip, k.Leave},
	}
}
