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

// timelineLoadedMsg signals that a fresh project snapshot arrived.
type timelineLoadedMsg struct {
	state *viewmodel.ProjectState
	err   error
}

type timelineKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var timelineKeys = timelineKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// timelineModel is the interactive milestone timeline: a cursor over
// the plan with a detail pane showing the selected milestone and the
// actions the acting role could take on it.
type timelineModel struct {
	app       *App
	projectID string

	state   *viewmodel.ProjectState
	cursor  int
	loading bool
	err     error
	spin    spinner.Model
}

func newTimelineModel(app *App, projectID string) *timelineModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	return &timelineModel{app: app, projectID: projectID, loading: true, spin: s}
}

func (m *timelineModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.load())
}

func (m *timelineModel) load() tea.Cmd {
	return func() tea.Msg {
		state, err := m.app.Workflow().Refresh(context.Background(), m.projectID)
		return timelineLoadedMsg{state: state, err: err}
	}
}

func (m *timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timelineLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.state = msg.state
			if n := len(m.state.Plan.Milestones); m.cursor >= n && n > 0 {
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
			if m.state != nil && m.cursor < len(m.state.Plan.Milestones)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *timelineModel) View() string {
	if m.loading {
		return m.spin.View() + formatter.Dim(" Loading project...") + "\n"
	}
	if m.err != nil {
		return formatter.StyleRed.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" +
			formatter.Dim("r to retry, q to quit") + "\n"
	}

	var b strings.Builder
	b.WriteString(formatter.Header(m.state.Project.Title))
	b.WriteString("\n\n")

	if m.state.Dispute != nil && !m.state.Dispute.Status.Final() {
		b.WriteString(formatter.StyleRed.Render("⚠ Open dispute: milestone actions are frozen") + "\n\n")
	}

	ms := m.state.Plan.Milestones
	if len(ms) == 0 {
		b.WriteString(formatter.Dim("No milestones yet.") + "\n")
	}
	for i, milestone := range ms {
		line := fmt.Sprintf("%s %s %s",
			formatter.MilestoneStatusBadge(milestone.Status),
			milestone.Title,
			formatter.Dim(milestone.Amount.String()))
		if i == m.cursor {
			line = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Render("▸ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if len(ms) > 0 && m.cursor < len(ms) {
		selected := ms[m.cursor]
		actions := viewmodel.AllowedActions(m.app.Role(), selected, ms, m.state.Gates())

		detail := formatter.Dim("due ") + formatter.DueDateStyled(selected.DueDate)
		if selected.SubmittedAt != nil {
			detail += "\n" + formatter.Dim(fmt.Sprintf("submitted %s (revision %d)",
				formatter.HumanTimestamp(*selected.SubmittedAt), int(selected.RevisionNumber)))
		}
		if selected.SubmissionNote != "" {
			detail += "\n" + formatter.Dim("note: ") + selected.SubmissionNote
		}
		detail += "\n" + formatter.Dim("actions: ") + formatter.FormatActions(actions)
		b.WriteString("\n" + formatter.RenderBox(selected.Title, detail) + "\n")
	}

	b.WriteString(formatter.Dim("↑/↓ select · r refresh · q quit") + "\n")
	return b.String()
}

func runTimelineTUI(app *App, projectID string) error {
	_, err := tea.NewProgram(newTimelineModel(app, projectID)).Run()
	return err
}
