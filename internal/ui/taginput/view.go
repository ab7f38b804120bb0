package taginput

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	removeGlyph = "×"
	errorGlyph  = "!"
)

// View renders the chips, the input line and the suggestion menu
func (m *Model) View() string {
	vm := m.ViewModel()

	var b strings.Builder
	if chips := m.renderChips(vm.Chips); chips != "" {
		b.WriteString(chips)
		b.WriteString("\n")
	}

	line := m.input.View()
	if vm.Loading {
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, " ", m.spinner.View())
	}
	b.WriteString(line)

	if menu := m.renderMenu(vm); menu != "" {
		b.WriteString("\n")
		b.WriteString(menu)
	}
	return b.String()
}

func (m *Model) renderChips(chips []ChipView) string {
	if len(chips) == 0 {
		return ""
	}
	parts := make([]string, 0, len(chips))
	for _, c := range chips {
		label := c.Label
		if c.IsError {
			label = m.styles.ErrorIndicator.Render(errorGlyph) + " " + label
		}
		label += " " + m.styles.RemoveControl.Render(removeGlyph)

		style := m.styles.Chip
		switch {
		case c.Focused:
			style = m.styles.ChipFocused
		case c.IsError:
			style = m.styles.ChipError
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderMenu(vm ViewModel) string {
	switch vm.Menu {
	case MenuList:
		rows := make([]string, 0, len(vm.Suggestions))
		for _, s := range vm.Suggestions {
			if s.Highlighted {
				rows = append(rows, m.styles.SuggestionFocus.Render("▸ "+s.Option.Label))
				continue
			}
			rows = append(rows, m.styles.Suggestion.Render("  "+s.Option.Label))
		}
		return m.styles.Menu.Render(strings.Join(rows, "\n"))
	case MenuNoResults:
		return m.styles.Menu.Render(m.styles.NoResults.Render(vm.NoResults))
	default:
		return ""
	}
}
