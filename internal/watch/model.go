package watch

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"cadence/internal/render"
)

// PlanFunc recomputes the plan from the task file and returns the rendered
// report.
type PlanFunc func() (string, error)

// Model is the bubbletea model for live re-planning. It renders the current
// plan in a scrollable viewport and recomputes whenever the watcher reports a
// change.
type Model struct {
	watcher *Watcher
	plan    PlanFunc

	viewport  viewport.Model
	ready     bool
	content   string
	err       error
	updatedAt time.Time
}

// NewModel creates the watch model. The watcher must already be started.
func NewModel(watcher *Watcher, plan PlanFunc) Model {
	return Model{
		watcher: watcher,
		plan:    plan,
	}
}

type fileChangedMsg Event

type planMsg struct {
	content string
	err     error
	at      time.Time
}

// Init kicks off the first plan computation and the change listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.recompute(), m.waitForChange())
}

// waitForChange blocks until the watcher reports the next settled change.
func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.watcher.Events()
		if !ok {
			return nil
		}
		return fileChangedMsg(ev)
	}
}

// recompute runs the plan function off the update loop.
func (m Model) recompute() tea.Cmd {
	plan := m.plan
	return func() tea.Msg {
		content, err := plan()
		return planMsg{content: content, err: err, at: time.Now()}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.recompute()
		}

	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 1
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.SetContent(m.viewContent())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}

	case fileChangedMsg:
		return m, tea.Batch(m.recompute(), m.waitForChange())

	case planMsg:
		m.content = msg.content
		m.err = msg.err
		m.updatedAt = msg.at
		if m.ready {
			m.viewport.SetContent(m.viewContent())
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the watch screen.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.headerView() + "\n" + m.viewport.View() + "\n" + m.footerView()
}

func (m Model) viewContent() string {
	if m.err != nil {
		return render.ContentBox.Render(
			render.Error.Render(fmt.Sprintf("plan failed: %v", m.err)) + "\n\n" +
				render.Muted.Render("Fix the task file; the plan refreshes on save."))
	}
	return m.content
}

func (m Model) headerView() string {
	title := render.Title.Render("cadence watch")
	stamp := ""
	if !m.updatedAt.IsZero() {
		stamp = render.Muted.Render(" updated " + m.updatedAt.Format("15:04:05"))
	}
	return title + stamp
}

func (m Model) footerView() string {
	return render.Muted.Render("r refresh • q quit")
}
