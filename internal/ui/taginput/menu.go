package taginput

// MenuView is what the suggestion area shows
type MenuView int

const (
	MenuHidden    MenuView = iota // menu closed
	MenuLoading                   // open but the lookup is loading, nothing rendered
	MenuNoResults                 // open, nothing to show: placeholder
	MenuList                      // open with suggestions
)

func (v MenuView) String() string {
	switch v {
	case MenuLoading:
		return "loading"
	case MenuNoResults:
		return "no-results"
	case MenuList:
		return "list"
	default:
		return "hidden"
	}
}

// ResolveMenu decides the menu rendering from the state machine and the lookup projection
func ResolveMenu(state MenuState, loading bool, visible int) MenuView {
	switch {
	case state != MenuOpen:
		return MenuHidden
	case loading:
		return MenuLoading
	case visible == 0:
		return MenuNoResults
	default:
		return MenuList
	}
}
