package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"taginput/internal/ui/taginput"
)

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginTop(1)

	helpKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	helpDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpNoteStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
)

// RenderHelp generates the help page from the active key bindings
func RenderHelp(input taginput.KeyMap, app appKeyMap) string {
	var help strings.Builder

	help.WriteString(helpTitleStyle.Render("taginput Help"))
	help.WriteString("\n")

	writeSection(&help, "Input", input.Commit, input.RemoveLast)
	writeSection(&help, "Suggestions", input.Next, input.Prev)
	writeSection(&help, "Values", input.ChipLeft, input.ChipRight, input.RemoveChip, input.Leave)
	help.WriteString(helpNoteStyle.Render("  Invalid values are marked with ! and can be removed with enter when focused"))
	help.WriteString("\n")
	writeSection(&help, "Other", app.Help, app.Leave, app.Quit)

	return help.String()
}

func writeSection(b *strings.Builder, title string, bindings ...key.Binding) {
	b.WriteString(helpSectionStyle.Render(title))
	b.WriteString("\n")

	width := 0
	for _, kb := range bindings {
		width = max(width, lipgloss.Width(kb.Help().Key))
	}
	for _, kb := range bindings {
		h := kb.Help()
		pad := strings.Repeat(" ", width-lipgloss.Width(h.Key))
		fmt.Fprintf(b, "  %s%s  %s\n", helpKeyStyle.Render(h.Key), pad, helpDescStyle.Render(h.Desc))
	}
}

var errNoProgram = errors.New("help pager: program not set")

// helpPager pages the live key bindings through ov while Bubble Tea
// releases the terminal
type helpPager struct {
	program *tea.Program
	input   taginput.KeyMap
	app     appKeyMap
}

func newHelpPager(input taginput.KeyMap, app appKeyMap) *helpPager {
	return &helpPager{input: input, app: app}
}

func (p *helpPager) content() string {
	return RenderHelp(p.input, p.app)
}

// Show blocks until the pager is closed
func (p *helpPager) Show() error {
	if p.program == nil {
		return errNoProgram
	}

	root, err := oviewer.NewRoot(strings.NewReader(p.content()))
	if err != nil {
		return fmt.Errorf("help pager: %w", err)
	}
	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()
	return root.Run()
}
