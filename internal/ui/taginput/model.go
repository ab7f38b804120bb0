// Package taginput is a tag-style multi-value input for Bubble Tea.
//
// Raw text typed into the field is offered suggestions from a lookup.
// Enter or Tab commits the highlighted suggestion or, with none
// highlighted, turns the raw text into a free-form value that is flagged
// when the validator rejects it. Selected values render as removable chips.
package taginput

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"taginput/internal/domain"
	"taginput/internal/validator"
)

// Config configures a Model. The zero value is usable.
type Config struct {
	// OnChange is called after every selection mutation with the full selection.
	OnChange func(domain.Selection)
	// OnInputChange is called on every raw text edit, before any debounce.
	OnInputChange func(string)
	// Lookup receives the raw text once edits pause for DebounceWait.
	Lookup func(term string) tea.Cmd

	Options      []domain.Option // candidate catalog
	DefaultValue []domain.Option // initial selection
	IsLoading    bool

	Placeholder        string
	LoadingPlaceholder string // replaces Placeholder while loading, when set
	NoResults          string

	// Validator flags free-form values. Nil accepts everything.
	Validator validator.Func
	Filter    FilterPolicy

	// NoBackspaceRemoval keeps chips when Backspace is pressed on an empty input.
	NoBackspaceRemoval bool

	DebounceWait time.Duration
	Width        int

	KeyMap *KeyMap
	Styles *Styles
	Logger *zap.Logger
}

// Model owns the raw text, the selection and the menu state of one widget
type Model struct {
	cfg      Config
	reducer  Reducer
	state    State
	input    textinput.Model
	spinner  spinner.Model
	debounce *Debouncer
	keys     KeyMap
	styles   *Styles
	logger   *zap.Logger

	options   []domain.Option
	loading   bool
	chipFocus int // index of the focused chip, -1 while the input has focus
	focused   bool
	closed    bool
}

// New creates a focused widget
func New(cfg Config) *Model {
	keys := DefaultKeyMap()
	if cfg.KeyMap != nil {
		keys = *cfg.KeyMap
	}
	styles := cfg.Styles
	if styles == nil {
		styles = NewStyles()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = "› "
	ti.PromptStyle = styles.Prompt
	ti.PlaceholderStyle = styles.Placeholder
	if cfg.Width > 0 {
		ti.Width = cfg.Width
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Loading

	m := &Model{
		cfg:       cfg,
		reducer:   Reducer{Validate: cfg.Validator},
		state:     NewState(cfg.DefaultValue),
		input:     ti,
		spinner:   sp,
		debounce:  NewDebouncer(cfg.DebounceWait),
		keys:      keys,
		styles:    styles,
		logger:    logger.Named("taginput"),
		options:   cfg.Options,
		loading:   cfg.IsLoading,
		chipFocus: -1,
	}
	m.syncPlaceholder()
	m.input.Focus()
	m.focused = true
	return m
}

// Init starts the cursor blink and, when loading, the spinner
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.loading {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.closed {
		return nil
	}

	switch msg := msg.(type) {
	case DebounceMsg:
		text, ok := m.debounce.Fire(msg)
		if !ok || m.cfg.Lookup == nil {
			return nil
		}
		m.logger.Debug("forwarding term to lookup", zap.String("term", text))
		return m.cfg.Lookup(text)

	case spinner.TickMsg:
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		if m.chipFocus >= 0 {
			return m.handleChipKey(msg)
		}
		return m.handleKey(msg)

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Commit):
		visible := m.Suggestions()
		if h := m.state.Highlight; m.MenuView() == MenuList && h >= 0 && h < len(visible) {
			return m.dispatch(SelectSuggestionAction{Option: visible[h]})
		}
		return m.dispatch(CommitAction{})

	case key.Matches(msg, m.keys.Next):
		return m.dispatch(HighlightAction{Delta: 1, Visible: m.highlightable()})

	case key.Matches(msg, m.keys.Prev):
		return m.dispatch(HighlightAction{Delta: -1, Visible: m.highlightable()})

	case key.Matches(msg, m.keys.RemoveLast) && m.state.RawText == "":
		if m.cfg.NoBackspaceRemoval {
			return nil
		}
		return m.dispatch(RemoveLastAction{})

	case key.Matches(msg, m.keys.ChipLeft) && m.state.RawText == "" && len(m.state.Selection) > 0:
		m.chipFocus = len(m.state.Selection) - 1
		m.input.Blur()
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		return tea.Batch(cmd, m.edit(after))
	}
	return cmd
}

func (m *Model) handleChipKey(msg tea.KeyMsg) tea.Cmd {
	chip := m.state.Selection[m.chipFocus]

	switch {
	case key.Matches(msg, m.keys.ChipLeft):
		if m.chipFocus > 0 {
			m.chipFocus--
		}
		return nil

	case key.Matches(msg, m.keys.ChipRight):
		m.chipFocus++
		if m.chipFocus >= len(m.state.Selection) {
			return m.refocus()
		}
		return nil

	case key.Matches(msg, m.keys.Leave):
		return m.refocus()

	case key.Matches(msg, m.keys.RemoveChip):
		return m.dispatch(RemoveAction{Value: chip.Value})

	case key.Matches(msg, m.keys.Commit):
		// Invalid chips are removable from the chip body as well
		if chip.IsError {
			return m.dispatch(RemoveAction{Value: chip.Value})
		}
		return nil
	}

	// Anything else goes back to the input
	cmd := m.refocus()
	return tea.Batch(cmd, m.handleKey(msg))
}

// edit records a raw text change and schedules the lookup notification
func (m *Model) edit(text string) tea.Cmd {
	cmd := m.dispatch(EditAction{Text: text})
	if m.cfg.OnInputChange != nil {
		m.cfg.OnInputChange(text)
	}
	return tea.Batch(cmd, m.debounce.Trigger(text))
}

// dispatch applies an action and performs its effects
func (m *Model) dispatch(a Action) tea.Cmd {
	next, fx := m.reducer.Apply(m.state, a)
	m.state = next

	if m.input.Value() != next.RawText {
		m.input.SetValue(next.RawText)
	}

	var cmd tea.Cmd
	if fx.Refocus {
		cmd = m.refocus()
	}
	if fx.SelectionChanged {
		m.logger.Debug("selection changed",
			zap.String("action", a.Type()),
			zap.Int("count", len(next.Selection)))
		if m.cfg.OnChange != nil {
			m.cfg.OnChange(next.Selection.Clone())
		}
	}
	return cmd
}

func (m *Model) refocus() tea.Cmd {
	m.chipFocus = -1
	m.focused = true
	return m.input.Focus()
}

func (m *Model) visibleCount() int {
	return len(m.Suggestions())
}

// highlightable is the number of rows the menu actually renders
func (m *Model) highlightable() int {
	if m.loading {
		return 0
	}
	return m.visibleCount()
}

func (m *Model) syncPlaceholder() {
	m.input.Placeholder = m.cfg.Placeholder
	if m.loading && m.cfg.LoadingPlaceholder != "" {
		m.input.Placeholder = m.cfg.LoadingPlaceholder
	}
}

// clampHighlight drops a highlight that no longer points at a visible suggestion
func (m *Model) clampHighlight() {
	if m.state.Highlight >= m.visibleCount() {
		m.state.Highlight = -1
	}
}

// Remove removes the chip with value, like its remove control
func (m *Model) Remove(value string) tea.Cmd {
	if m.closed {
		return nil
	}
	return m.dispatch(RemoveAction{Value: value})
}

// Select adds a suggestion, like picking it from the menu
func (m *Model) Select(opt domain.Option) tea.Cmd {
	if m.closed {
		return nil
	}
	return m.dispatch(SelectSuggestionAction{Option: opt})
}

// SetOptions replaces the candidate catalog
func (m *Model) SetOptions(options []domain.Option) {
	m.options = options
	m.clampHighlight()
}

// SetLoading updates the loading flag. It returns the spinner tick when loading starts.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	was := m.loading
	m.loading = loading
	m.syncPlaceholder()
	if loading && !was {
		return m.spinner.Tick
	}
	return nil
}

// SetLookupResult applies a lookup projection in one step. Nil options count as empty.
func (m *Model) SetLookupResult(res domain.LookupResult) tea.Cmd {
	m.SetOptions(res.Options)
	return m.SetLoading(res.Loading)
}

// Focus gives the input keyboard focus
func (m *Model) Focus() tea.Cmd {
	return m.refocus()
}

// Blur removes focus and discards the raw text
func (m *Model) Blur() {
	m.dispatch(ResetAction{})
	m.chipFocus = -1
	m.focused = false
	m.input.Blur()
}

// Close cancels the pending lookup notification and detaches the callbacks.
// A closed model ignores further messages.
func (m *Model) Close() {
	m.debounce.Close()
	m.cfg.OnChange = nil
	m.cfg.OnInputChange = nil
	m.cfg.Lookup = nil
	m.input.Blur()
	m.focused = false
	m.closed = true
}

// SetWidth sets the input width
func (m *Model) SetWidth(w int) {
	m.input.Width = w
}

// Value returns a copy of the selection
func (m *Model) Value() domain.Selection {
	return m.state.Selection.Clone()
}

// State returns the current state record
func (m *Model) State() State {
	s := m.state
	s.Selection = s.Selection.Clone()
	return s
}

// RawText returns the in-progress text
func (m *Model) RawText() string {
	return m.state.RawText
}

// MenuOpen reports whether the menu state machine is open
func (m *Model) MenuOpen() bool {
	return m.state.Menu == MenuOpen
}

// MenuView returns what the suggestion area renders
func (m *Model) MenuView() MenuView {
	return ResolveMenu(m.state.Menu, m.loading, m.visibleCount())
}

// Suggestions returns the candidates eligible for display
func (m *Model) Suggestions() []domain.Option {
	return Filter(m.cfg.Filter, m.state.RawText, m.options, m.state.Selection)
}

// Loading reports the lookup loading flag
func (m *Model) Loading() bool {
	return m.loading
}

// Focused reports whether the widget has keyboard focus
func (m *Model) Focused() bool {
	return m.focused
}

// FocusedChip returns the value of the focused chip
func (m *Model) FocusedChip() (string, bool) {
	if m.chipFocus < 0 || m.chipFocus >= len(m.state.Selection) {
		return "", false
	}
	return m.state.Selection[m.chipFocus].Value, true
}

// KeyMap returns the active key bindings
func (m *Model) KeyMap() KeyMap {
	return m.keys
}
