package taginput

import "github.com/charmbracelet/lipgloss"

// Styles contains all the style definitions for the widget
type Styles struct {
	Chip            lipgloss.Style
	ChipError       lipgloss.Style
	ChipFocused     lipgloss.Style
	RemoveControl   lipgloss.Style
	ErrorIndicator  lipgloss.Style
	Prompt          lipgloss.Style
	Placeholder     lipgloss.Style
	Loading         lipgloss.Style
	Menu            lipgloss.Style
	Suggestion      lipgloss.Style
	SuggestionFocus lipgloss.Style
	NoResults       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Chip: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1),
		ChipError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // red
			Background(lipgloss.Color("52")).
			Padding(0, 1),
		ChipFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("226")).
			Bold(true).
			Padding(0, 1),
		RemoveControl:   lipgloss.NewStyle().Faint(true),
		ErrorIndicator:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Prompt:          lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		Placeholder:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Loading:         lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Menu: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Suggestion:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		SuggestionFocus: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Bold(true),
		NoResults:       lipgloss.NewStyle().Faint(true).Italic(true),
	}
}
