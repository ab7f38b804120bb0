package taginput

import (
	"strings"

	"taginput/internal/domain"
	"taginput/internal/validator"
)

// MenuState is the suggestion menu visibility
type MenuState int

const (
	MenuClosed MenuState = iota
	MenuOpen
)

func (s MenuState) String() string {
	if s == MenuOpen {
		return "open"
	}
	return "closed"
}

// State is the complete widget state. Values are never mutated in place,
// every Action produces a new State.
type State struct {
	Selection domain.Selection
	RawText   string
	Menu      MenuState
	Highlight int // index into the visible suggestions, -1 for none
}

// NewState seeds the selection from initial
func NewState(initial []domain.Option) State {
	return State{
		Selection: domain.Selection(initial).Clone(),
		Highlight: -1,
	}
}

// Effects are the side effects the controller must carry out after a transition
type Effects struct {
	SelectionChanged bool
	Refocus          bool
	PreventDefault   bool
}

// Reducer applies actions to a State
type Reducer struct {
	Validate validator.Func
}

// Apply returns the state after a and the side effects it requires
func (r Reducer) Apply(s State, a Action) (State, Effects) {
	next := s
	var fx Effects

	switch a := a.(type) {
	case EditAction:
		next = withRawText(s, a.Text)

	case CommitAction:
		fx.PreventDefault = true
		if strings.TrimSpace(s.RawText) != "" {
			next.Selection = s.Selection.Append(r.commit(s.RawText))
			fx.SelectionChanged = true
		}
		next.RawText = ""
		next.Menu = MenuClosed
		next.Highlight = -1

	case SelectSuggestionAction:
		fx.PreventDefault = true
		fx.Refocus = true
		fx.SelectionChanged = true
		next.Selection = s.Selection.Append(a.Option)
		next.RawText = ""
		next.Menu = MenuClosed
		next.Highlight = -1

	case RemoveAction:
		fx.Refocus = true
		fx.SelectionChanged = true
		next = withRawText(s, "")
		next.Selection = s.Selection.RemoveValue(a.Value)

	case RemoveLastAction:
		if len(s.Selection) == 0 {
			break
		}
		fx.SelectionChanged = true
		next.Selection = s.Selection.RemoveLast()

	case ResetAction:
		next.RawText = ""
		next.Menu = MenuClosed
		next.Highlight = -1

	case HighlightAction:
		next.Highlight = moveHighlight(s, a)
	}

	return next, fx
}

func (r Reducer) commit(text string) domain.Option {
	return domain.Option{
		Label:   text,
		Value:   text,
		IsError: r.Validate != nil && !r.Validate(text),
	}
}

// withRawText stores text verbatim and applies the length rule:
// empty to non-empty opens the menu, non-empty to empty closes it.
func withRawText(s State, text string) State {
	next := s
	next.RawText = text
	next.Highlight = -1
	switch {
	case s.RawText == "" && text != "":
		next.Menu = MenuOpen
	case text == "":
		next.Menu = MenuClosed
	}
	return next
}

// moveHighlight cycles through none, 0 .. Visible-1
func moveHighlight(s State, a HighlightAction) int {
	if s.Menu != MenuOpen || a.Visible <= 0 {
		return -1
	}
	n := a.Visible + 1
	h := s.Highlight + a.Delta
	return ((h+1)%n+n)%n - 1
}
