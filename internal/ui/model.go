package ui

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"taginput/internal/config"
	"taginput/internal/domain"
	"taginput/internal/eventbus"
	"taginput/internal/lookup"
	"taginput/internal/ui/taginput"
	"taginput/internal/validator"
)

const statusTimeout = 3 * time.Second

// Searcher produces the lookup command for a term
type Searcher interface {
	Fetch(term string) tea.Cmd
}

// Model is the host application around the tag input
type Model struct {
	bus      eventbus.EventBus
	config   *config.Config
	searcher Searcher
	logger   *zap.Logger

	input *taginput.Model
	keys  appKeyMap
	help  help.Model

	selection  domain.Selection
	latestTerm string
	status     string
	width      int
	height     int

	inPagerMode bool
	pager       *helpPager
	program     *tea.Program
}

// NewModel creates the application model
func NewModel(bus eventbus.EventBus, cfg *config.Config, searcher Searcher, logger *zap.Logger) (*Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	validate, err := validator.ByName(cfg.Validator)
	if err != nil {
		return nil, err
	}
	filter, err := taginput.ParseFilterPolicy(cfg.Filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrUnknownFilter, err)
	}

	m := &Model{
		bus:       bus,
		config:    cfg,
		searcher:  searcher,
		logger:    logger.Named("ui"),
		keys:      defaultAppKeyMap(),
		help:      help.New(),
		selection: domain.Selection(cfg.Initial).Clone(),
	}

	m.input = taginput.New(taginput.Config{
		OnChange:           m.handleChange,
		OnInputChange:      m.handleInputChange,
		Lookup:             m.lookup,
		DefaultValue:       cfg.Initial,
		IsLoading:          true,
		Placeholder:        cfg.Placeholder,
		LoadingPlaceholder: cfg.LoadingPlaceholder,
		NoResults:          cfg.NoResults,
		Validator:          validate,
		Filter:             filter,
		NoBackspaceRemoval: !cfg.BackspaceRemoves,
		DebounceWait:       cfg.Debounce(),
		Logger:             logger,
	})
	m.pager = newHelpPager(m.input.KeyMap(), m.keys)
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.program = p
}

// Selection returns the current selection
func (m *Model) Selection() domain.Selection {
	return m.selection.Clone()
}

// Input exposes the embedded tag input
func (m *Model) Input() *taginput.Model {
	return m.input
}

// Init starts the widget and queries the empty term, as on first mount
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.input.Init(), m.lookup(""))
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.SetWidth(max(msg.Width-6, 10))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case lookup.ResultMsg:
		return m, m.applyResult(msg)

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Warn("help pager failed", zap.Error(msg.err))
			return m, m.setStatus("Help unavailable: " + msg.err.Error())
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.status == m.status {
			m.status = ""
		}
		return m, nil
	}

	return m, m.input.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()

	case key.Matches(msg, m.keys.Help):
		return m, m.fetchHelpPager()

	case key.Matches(msg, m.keys.Leave):
		if _, onChip := m.input.FocusedChip(); onChip {
			break
		}
		if m.input.RawText() == "" {
			return m, m.quit()
		}
		m.input.Blur()
		return m, m.input.Focus()
	}

	return m, m.input.Update(msg)
}

// lookup is the debounced collaborator call: mark loading and search
func (m *Model) lookup(term string) tea.Cmd {
	m.latestTerm = term
	if m.searcher == nil {
		m.input.SetLoading(false)
		return nil
	}
	return tea.Batch(m.input.SetLoading(true), m.searcher.Fetch(term))
}

// applyResult keys results by term so a slow answer for an abandoned term is dropped
func (m *Model) applyResult(msg lookup.ResultMsg) tea.Cmd {
	if msg.Term != m.latestTerm {
		m.logger.Debug("dropping stale lookup result",
			zap.String("term", msg.Term),
			zap.String("latest", m.latestTerm))
		return nil
	}
	if msg.Err != nil {
		// previous suggestions stay on screen
		m.input.SetLoading(false)
		return m.setStatus("Lookup failed: " + msg.Err.Error())
	}
	return m.input.SetLookupResult(domain.LookupResult{Options: msg.Options})
}

func (m *Model) handleChange(sel domain.Selection) {
	m.selection = sel
	if m.bus != nil {
		m.bus.Publish(eventbus.SelectionChangedEvent{Selection: sel.Clone()})
	}
}

func (m *Model) handleInputChange(text string) {
	if m.bus != nil {
		m.bus.Publish(eventbus.InputChangedEvent{Text: text})
	}
}

// handleEvent processes bus events forwarded into the program
func (m *Model) handleEvent(e eventbus.DomainEvent) tea.Cmd {
	switch event := e.(type) {
	case eventbus.CatalogReloadedEvent:
		m.logger.Info("catalog reloaded", zap.String("path", event.Path), zap.Int("count", event.Count))
		return tea.Batch(
			m.setStatus(fmt.Sprintf("Catalog reloaded: %d contacts", event.Count)),
			m.lookup(m.input.RawText()),
		)
	case eventbus.ErrorEvent:
		return m.setStatus(event.Message)
	}
	return nil
}

func (m *Model) setStatus(status string) tea.Cmd {
	m.status = status
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{status: status}
	})
}

func (m *Model) quit() tea.Cmd {
	m.input.Close()
	return tea.Quit
}

// fetchHelpPager returns a command that shows help using the ov pager
func (m *Model) fetchHelpPager() tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show()
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// View renders the input, the app state panel and the status line
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Recipients"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	state, err := json.MarshalIndent(m.selection, "", "  ")
	if err != nil {
		state = []byte(err.Error())
	}
	b.WriteString(panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		panelTitleStyle.Render("App State"),
		string(state),
	)))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys.with(m.input.KeyMap())))
	return b.String()
}

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("241")).Padding(0, 1)
	panelTitleStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)
