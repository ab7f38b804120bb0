package ui

import (
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taginput/internal/config"
	"taginput/internal/domain"
	"taginput/internal/eventbus"
	"taginput/internal/lookup"
	"taginput/internal/ui/taginput"
)

type fakeSearcher struct {
	terms []string
}

func (f *fakeSearcher) Fetch(term string) tea.Cmd {
	f.terms = append(f.terms, term)
	return func() tea.Msg { return lookup.ResultMsg{Term: term} }
}

func newTestApp(t *testing.T, bus eventbus.EventBus) (*Model, *fakeSearcher) {
	t.Helper()
	cfg := config.DefaultConfig()
	search := &fakeSearcher{}
	m, err := NewModel(bus, cfg, search, zap.NewNop())
	require.NoError(t, err)
	return m, search
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelRejectsUnknownSettings(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Validator = "phone"
	_, err := NewModel(nil, cfg, nil, nil)
	assert.Error(t, err)

	cfg = config.DefaultConfig()
	cfg.Filter = "fuzzy"
	_, err = NewModel(nil, cfg, nil, nil)
	assert.ErrorIs(t, err, config.ErrUnknownFilter)
}

func TestInitLooksUpEmptyTerm(t *testing.T) {
	m, search := newTestApp(t, nil)
	require.NotNil(t, m.Init())
	assert.Equal(t, []string{""}, search.terms)
	assert.True(t, m.Input().Loading())
}

func TestLookupResultForLatestTermOnly(t *testing.T) {
	m, _ := newTestApp(t, nil)
	m.Init()

	m.lookup("jo")
	m.lookup("john")

	m.Update(lookup.ResultMsg{Term: "jo", Options: []domain.Option{domain.NewOption("jo@x.io")}})
	assert.True(t, m.Input().Loading(), "stale result must not end loading")

	m.Update(keyRunes("j"))
	m.Update(lookup.ResultMsg{Term: "john", Options: []domain.Option{domain.NewOption("john@google.com")}})
	assert.False(t, m.Input().Loading())
	assert.Equal(t, []domain.Option{domain.NewOption("john@google.com")}, m.Input().Suggestions())
}

func TestLookupErrorKeepsPreviousOptions(t *testing.T) {
	m, _ := newTestApp(t, nil)
	previous := []domain.Option{domain.NewOption("john@google.com")}

	m.lookup("jo")
	m.Update(lookup.ResultMsg{Term: "jo", Options: previous})
	m.Update(keyRunes("j"))
	require.Equal(t, previous, m.Input().Suggestions())

	m.lookup("joh")
	require.True(t, m.Input().Loading())
	cmd := m.applyResult(lookup.ResultMsg{Term: "joh", Err: errors.New("boom")})

	assert.NotNil(t, cmd)
	assert.Contains(t, m.status, "boom")
	assert.False(t, m.Input().Loading())
	assert.Equal(t, previous, m.Input().Suggestions())
}

func TestStatusClearsOnlyItsOwnMessage(t *testing.T) {
	m, _ := newTestApp(t, nil)
	m.setStatus("first")
	m.setStatus("second")

	m.Update(clearStatusMsg{status: "first"})
	assert.Equal(t, "second", m.status)
	m.Update(clearStatusMsg{status: "second"})
	assert.Empty(t, m.status)
}

func TestSelectionPublishedInOrder(t *testing.T) {
	bus := eventbus.New(zap.NewNop())

	var mu sync.Mutex
	var got [][]string
	var edits []string
	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.(eventbus.SelectionChangedEvent).Selection.Values())
	})
	bus.Subscribe(eventbus.EventInputChanged, func(e eventbus.DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		edits = append(edits, e.(eventbus.InputChangedEvent).Text)
	})

	m, _ := newTestApp(t, bus)
	m.Update(keyRunes("a"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(keyRunes("b"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	bus.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, [][]string{{"a"}, {"a", "b"}, {"a"}}, got)
	assert.Equal(t, []string{"a", "b"}, edits)
	assert.Equal(t, []string{"a"}, m.Selection().Values())
	assert.True(t, m.Selection()[0].IsError)
}

func TestEscClearsThenQuits(t *testing.T) {
	m, _ := newTestApp(t, nil)
	m.Update(keyRunes("abc"))
	require.Equal(t, "abc", m.Input().RawText())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.Input().RawText())
	assert.True(t, m.Input().Focused())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestCtrlCQuitsAndClosesInput(t *testing.T) {
	m, _ := newTestApp(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	m.Update(keyRunes("x"))
	assert.Empty(t, m.Input().RawText(), "closed input ignores keys")
}

func TestCatalogReloadRequeries(t *testing.T) {
	m, search := newTestApp(t, nil)
	m.Update(keyRunes("jo"))

	m.Update(EventMsg{Event: eventbus.CatalogReloadedEvent{Path: "c.yaml", Count: 7}})
	assert.Equal(t, []string{"jo"}, search.terms)
	assert.Contains(t, m.status, "7 contacts")
}

func TestViewShowsAppState(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Initial = []domain.Option{domain.NewOption("john@google.com")}
	m, err := NewModel(nil, cfg, nil, nil)
	require.NoError(t, err)

	out := m.View()
	assert.Contains(t, out, "App State")
	assert.Contains(t, out, `"value": "john@google.com"`)

	m.inPagerMode = true
	assert.Empty(t, m.View())
}

func TestRenderHelpListsBindings(t *testing.T) {
	out := RenderHelp(taginput.DefaultKeyMap(), defaultAppKeyMap())
	for _, want := range []string{"enter/tab", "backspace", "F1", "ctrl+c", "Suggestions"} {
		assert.Contains(t, out, want)
	}
}

func TestHelpPagerNeedsProgram(t *testing.T) {
	m, _ := newTestApp(t, nil)
	assert.Nil(t, m.fetchHelpPager())
	assert.ErrorIs(t, m.pager.Show(), errNoProgram)
}

func TestHelpPagerUsesLiveBindings(t *testing.T) {
	keys := taginput.DefaultKeyMap()
	keys.Commit.SetHelp("ctrl+s", "save value")
	pager := newHelpPager(keys, defaultAppKeyMap())

	out := pager.content()
	assert.Contains(t, out, "ctrl+s")
	assert.Contains(t, out, "save value")
}
