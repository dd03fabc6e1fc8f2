// Package tui renders a Bubble Tea progress view over a repair run: the
// fraction of the search space explored, the most recent test outcomes,
// and whether a passing patch has been found (spec.md §7).
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"corrigo/internal/oracle"
)

type progressModel struct {
	title       string
	events      <-chan Event
	spinner     spinner.Model
	prog        progress.Model
	candidate   int
	total       int
	recentTests []testResult
	found       int
	foundAt     bool
	done        bool
}

type testResult struct {
	name   string
	status oracle.Status
}

type eventMsg Event
type doneMsg struct{}

const maxRecentTests = 8

// NewProgressModel returns a Bubble Tea model driven by events, the way
// internal/ui.NewProgressModel drives the compiler's own build progress.
func NewProgressModel(title string, events <-chan Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &progressModel{title: title, events: events, spinner: sp, prog: prog}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.apply(Event(msg))
		return m, tea.Batch(cmd, m.listen())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		next, cmd := m.prog.Update(msg)
		m.prog = next.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) apply(ev Event) tea.Cmd {
	switch ev.Kind {
	case EventExplore:
		m.candidate, m.total = ev.Candidate, ev.Total
		if m.total > 0 {
			return m.prog.SetPercent(float64(m.candidate) / float64(m.total))
		}
	case EventTest:
		m.recentTests = append(m.recentTests, testResult{name: ev.Test, status: ev.Status})
		if len(m.recentTests) > maxRecentTests {
			m.recentTests = m.recentTests[len(m.recentTests)-maxRecentTests:]
		}
	case EventFound:
		m.found = ev.Candidate
		m.foundAt = true
	}
	return nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	if m.total > 0 {
		b.WriteString(fmt.Sprintf("exploring %d/%d\n", m.candidate, m.total))
	}

	for _, r := range m.recentTests {
		b.WriteString(fmt.Sprintf("  %s %s\n", statusStyle(r.status).Render(r.status.String()), r.name))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	if m.foundAt {
		b.WriteString(fmt.Sprintf("\npatch found at candidate %d\n", m.found))
	}

	return b.String()
}

func (m *progressModel) listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func statusStyle(status oracle.Status) lipgloss.Style {
	switch status {
	case oracle.Pass:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case oracle.Fail:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case oracle.Timeout:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}
