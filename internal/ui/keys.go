package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"taginput/internal/ui/taginput"
)

// appKeyMap holds the bindings the host handles before the input sees them
type appKeyMap struct {
	Help  key.Binding
	Quit  key.Binding
	Leave key.Binding
}

func defaultAppKeyMap() appKeyMap {
	return appKeyMap{
		Help:  key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "help")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Leave: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear text / quit when empty")),
	}
}

// with combines the host bindings with the input bindings for the help bar
func (k appKeyMap) with(input taginput.KeyMap) combinedKeyMap {
	return combinedKeyMap{app: k, input: input}
}

type combinedKeyMap struct {
	app   appKeyMap
	input taginput.KeyMap
}

// ShortHelp implements help.KeyMap
func (c combinedKeyMap) ShortHelp() []key.Binding {
	return append(c.input.ShortHelp(), c.app.Help, c.app.Quit)
}

// FullHelp implements help.KeyMap
func (c combinedKeyMap) FullHelp() [][]key.Binding {
	return append(c.input.FullHelp(), []key.Binding{c.app.Help, c.app.Leave, c.app.Quit})
}
