// Package tui is the terminal front end of the incremental professional
// search.
package tui

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sps2604/Prosearch-sub001/internal/search"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("205"))
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
)

// ResultsMsg tells the model that the search session changed.
type ResultsMsg struct{}

// Notifier forwards search notifications into a running program. Messages
// sent before Attach are dropped; the next key press refreshes anyway.
type Notifier struct {
	p atomic.Pointer[tea.Program]
}

func (n *Notifier) Attach(p *tea.Program) {
	n.p.Store(p)
}

// OnResults matches search.WithOnResults. It may run on the program's own
// goroutine (an empty search completes synchronously), so Send must not
// block here.
func (n *Notifier) OnResults([]search.ProfessionalSummary) {
	if p := n.p.Load(); p != nil {
		go p.Send(ResultsMsg{})
	}
}

// Model drives a search.Searcher from keyboard input.
type Model struct {
	searcher *search.Searcher
	input    textinput.Model
	session  search.Session
	cursor   int
	force    int
	selected string
	width    int
}

// New wraps s. The searcher must have been mounted with a navigator that
// reports back through Navigate.
func New(s *search.Searcher) *Model {
	opts := s.Options()

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.SetValue(opts.InitialQuery)
	ti.Focus()

	return &Model{
		searcher: s,
		input:    ti,
		session:  s.Session(),
	}
}

// Navigate records the profile path of the chosen result.
func (m *Model) Navigate(path string) {
	m.selected = path
}

// Selected is the profile path chosen before quitting, if any.
func (m *Model) Selected() string {
	return m.selected
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultsMsg:
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.searcher.Close()
			return m, tea.Quit
		case "enter":
			m.force++
			m.searcher.SetForceKey(m.force)
			m.refresh()
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.session.Results)-1 {
				m.cursor++
			}
			return m, nil
		case "tab":
			if m.cursor < len(m.session.Results) {
				m.searcher.Select(m.session.Results[m.cursor])
				if m.selected != "" {
					m.searcher.Close()
					return m, tea.Quit
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.searcher.SetText(m.input.Value())
	m.refresh()
	return m, cmd
}

func (m *Model) refresh() {
	m.session = m.searcher.Session()
	if m.cursor >= len(m.session.Results) {
		m.cursor = max(len(m.session.Results)-1, 0)
	}
}

func (m *Model) View() string {
	opts := m.searcher.Options()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Find a professional"))
	b.WriteString("\n")

	if opts.RenderInput {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	if opts.ShowResults {
		switch {
		case m.session.Loading:
			b.WriteString(infoStyle.Render("Searching..."))
			b.WriteString("\n")
		case m.session.Error != "":
			b.WriteString(errorStyle.Render(m.session.Error))
			b.WriteString("\n")
		case m.session.InfoMessage != "":
			b.WriteString(infoStyle.Render(m.session.InfoMessage))
			b.WriteString("\n")
		}

		for i, p := range m.session.Results {
			name := p.Name
			if i == m.cursor {
				name = selectedStyle.Render(name)
			}
			b.WriteString(name + "  " + detailStyle.Render(describe(p)) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: search now • ↑/↓: move • tab: open profile • esc: quit"))
	return b.String()
}

func describe(p search.ProfessionalSummary) string {
	parts := []string{p.Profession}
	if p.Address != nil && *p.Address != "" {
		parts = append(parts, *p.Address)
	}
	if p.ExperienceYears != nil {
		parts = append(parts, fmt.Sprintf("%g yrs", *p.ExperienceYears))
	}
	return strings.Join(parts, " · ")
}
