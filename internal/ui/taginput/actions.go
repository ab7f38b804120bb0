package taginput

import "taginput/internal/domain"

// Action is one state transition request for the Reducer
type Action interface {
	Type() string
}

// Text input actions
type EditAction struct {
	Text string
}

func (a EditAction) Type() string { return "edit" }

type CommitAction struct{}

func (a CommitAction) Type() string { return "commit" }

// ResetAction is the blur-equivalent: drop the raw text and close the menu
type ResetAction struct{}

func (a ResetAction) Type() string { return "reset" }

// Selection actions
type RemoveAction struct {
	Value string
}

func (a RemoveAction) Type() string { return "remove" }

type RemoveLastAction struct{}

func (a RemoveLastAction) Type() string { return "remove_last" }

type SelectSuggestionAction struct {
	Option domain.Option
}

func (a SelectSuggestionAction) Type() string { return "select_suggestion" }

// Menu actions
type HighlightAction struct {
	Delta   int // +1 next, -1 previous
	Visible int // number of suggestions currently shown
}

func (a HighlightAction) Type() string { return "highlight" }
