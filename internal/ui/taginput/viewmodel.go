package taginput

import "taginput/internal/domain"

// Stable identifiers of the widget surface
const (
	LoadingID   = "select-loading"
	NoResultsID = "select-options-no-results"
)

// ChipID identifies the chip of value
func ChipID(value string) string { return "select-value-" + value }

// ChipErrorID identifies the error indicator of an invalid chip
func ChipErrorID(value string) string { return "select-value-error-" + value }

// RemoveID identifies the remove control of a chip
func RemoveID(value string) string { return "remove-value-" + value }

// ResultID identifies a suggestion row by label
func ResultID(label string) string { return "select-results-" + label }

// ChipView is one rendered selection entry
type ChipView struct {
	ID       string
	ErrorID  string // empty unless the entry is invalid
	RemoveID string
	Label    string
	Value    string
	IsError  bool
	Focused  bool
}

// SuggestionView is one rendered suggestion row
type SuggestionView struct {
	ID          string
	Option      domain.Option
	Highlighted bool
}

// ViewModel is the render-ready projection of the widget
type ViewModel struct {
	Loading     bool
	Chips       []ChipView
	Input       string
	Placeholder string
	Menu        MenuView
	Suggestions []SuggestionView
	NoResults   string
}

// IDs returns every identifier present on the surface
func (vm ViewModel) IDs() []string {
	var ids []string
	if vm.Loading {
		ids = append(ids, LoadingID)
	}
	for _, c := range vm.Chips {
		ids = append(ids, c.ID, c.RemoveID)
		if c.ErrorID != "" {
			ids = append(ids, c.ErrorID)
		}
	}
	for _, s := range vm.Suggestions {
		ids = append(ids, s.ID)
	}
	if vm.Menu == MenuNoResults {
		ids = append(ids, NoResultsID)
	}
	return ids
}

// Has reports whether id is present on the surface
func (vm ViewModel) Has(id string) bool {
	for _, got := range vm.IDs() {
		if got == id {
			return true
		}
	}
	return false
}

// ViewModel builds the current surface
func (m *Model) ViewModel() ViewModel {
	vm := ViewModel{
		Loading:     m.loading,
		Input:       m.state.RawText,
		Placeholder: m.input.Placeholder,
		Menu:        m.MenuView(),
	}

	for i, opt := range m.state.Selection {
		chip := ChipView{
			ID:       ChipID(opt.Value),
			RemoveID: RemoveID(opt.Value),
			Label:    opt.Label,
			Value:    opt.Value,
			IsError:  opt.IsError,
			Focused:  i == m.chipFocus,
		}
		if opt.IsError {
			chip.ErrorID = ChipErrorID(opt.Value)
		}
		vm.Chips = append(vm.Chips, chip)
	}

	switch vm.Menu {
	case MenuList:
		for i, opt := range m.Suggestions() {
			vm.Suggestions = append(vm.Suggestions, SuggestionView{
				ID:          ResultID(opt.Label),
				Option:      opt,
				Highlighted: i == m.state.Highlight,
			})
		}
	case MenuNoResults:
		vm.NoResults = m.cfg.NoResults
		if vm.NoResults == "" {
			vm.NoResults = "No results"
		}
	}
	return vm
}
