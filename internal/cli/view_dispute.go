package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/danialarif/gigdesk/internal/cli/formatter"
	"github.com/danialarif/gigdesk/internal/viewmodel"
)

type disputeLoadedMsg struct {
	state *viewmodel.ProjectState
	err   error
}

// disputeModel is the interactive dispute thread: the parsed update
// blocks with a cursor, plus resolution notes once the dispute closes.
type disputeModel struct {
	app       *App
	projectID string

	state   *viewmodel.ProjectState
	entries []viewmodel.ThreadEntry
	cursor  int
	loading bool
	err     error
	spin    spinner.Model
}

func newDisputeModel(app *App, projectID string) *disputeModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	return &disputeModel{app: app, projectID: projectID, loading: true, spin: s}
}

func (m *disputeModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.load())
}

func (m *disputeModel) load() tea.Cmd {
	return func() tea.Msg {
		state, err := m.app.Workflow().Refresh(context.Background(), m.projectID)
		return disputeLoadedMsg{state: state, err: err}
	}
}

func (m *disputeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case disputeLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.state = msg.state
			m.entries = viewmodel.ParseDisputeThread(m.state.Dispute, m.state.Project)
			if n := len(m.entries); m.cursor >= n && n > 0 {
				m.cursor = n - 1
			}
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, timelineKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, timelineKeys.Refresh):
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.load())
		case key.Matches(msg, timelineKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, timelineKeys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *disputeModel) View() string {
	if m.loading {
		return m.spin.View() + formatter.Dim(" Loading dispute...") + "\n"
	}
	if m.err != nil {
		return formatter.StyleRed.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" +
			formatter.Dim("r to retry, q to quit") + "\n"
	}

	d := m.state.Dispute
	if d == nil {
		return formatter.Dim("No dispute for this project.") + "\n" +
			formatter.Dim("r refresh · q quit") + "\n"
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Dispute — " + m.state.Project.Title))
	b.WriteString("  " + formatter.DisputeStatusBadge(d.Status) + "\n\n")

	for i, entry := range m.entries {
		label := "Original report"
		if i > 0 {
			label = fmt.Sprintf("Update %d", i)
		}
		if entry.Author != "" {
			label += " — " + entry.Author
		}
		if entry.Date != "" {
			label += formatter.Dim(" on " + entry.Date)
		}
		if i == m.cursor {
			b.WriteString(lipgloss.NewStyle().Foreground(formatter.ColorHeader).Render("▸ ") + formatter.Bold(label) + "\n")
			b.WriteString(formatter.Indent(entry.Content, "  ") + "\n\n")
		} else {
			b.WriteString("  " + formatter.Bold(label) + "\n")
			b.WriteString(formatter.Indent(formatter.Truncate(entry.Content, 80), "  ") + "\n\n")
		}
	}

	for _, note := range d.ResolutionNotes {
		result, comment := note.Split()
		body := result
		if comment != "" {
			body += "\n" + formatter.Dim(comment)
		}
		b.WriteString(formatter.RenderBox("Resolution — "+note.AdminName, body) + "\n")
	}

	b.WriteString(formatter.Dim("↑/↓ select · r refresh · q quit") + "\n")
	return b.String()
}

func runDisputeTUI(app *App, projectID string) error {
	_, err := tea.NewProgram(newDisputeModel(app, projectID)).Run()
	return err
}
