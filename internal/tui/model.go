// Package tui renders the task list as a single terminal screen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/output"
	"todo/internal/service"
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// Model is the bubbletea model for the task screen. It keeps a snapshot of
// the list for rendering and refreshes it from the service after every
// call; it never edits the snapshot itself.
type Model struct {
	svc       service.Service
	tasks     []service.Task
	cursor    int
	focus     focus
	input     textinput.Model
	status    string
	statusErr bool
}

// New creates a model showing svc's current tasks with the input focused.
func New(svc service.Service) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a new task"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = ""
	ti.Focus()

	m := Model{
		svc:   svc,
		input: ti,
		focus: focusInput,
	}
	m.refresh()
	return m
}

// Run shows the screen on in/out until the user quits or ctx is cancelled.
func Run(ctx context.Context, svc service.Service, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(svc),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-20, 10)
		return m, nil
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.focus == focusInput {
			return m.focusOnList(), nil
		}
		return m.focusOnInput()
	}

	if m.focus == focusInput {
		return m.updateInput(msg)
	}
	return m.updateList(msg)
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.add(), nil
	case "esc":
		return m.focusOnList(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case " ", "x", "enter":
		return m.toggle(), nil
	case "d", "delete", "backspace":
		return m.remove(), nil
	case "a", "i", "/":
		return m.focusOnInput()
	}
	return m, nil
}

func (m Model) add() Model {
	task, err := m.svc.Add(m.input.Value())
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			return m.fail("Task title cannot be empty")
		}
		return m.fail(err.Error())
	}

	m.input.SetValue("")
	m.refresh()
	m.cursor = len(m.tasks) - 1
	return m.ok(fmt.Sprintf("Added %q", task.Title))
}

func (m Model) toggle() Model {
	id, ok := m.selectedID()
	if !ok {
		return m
	}
	task, err := m.svc.Toggle(id)
	m.refresh()
	if err != nil {
		return m.staleOrFail(err)
	}
	if task.Completed {
		return m.ok(fmt.Sprintf("Completed %q", task.Title))
	}
	return m.ok(fmt.Sprintf("Reopened %q", task.Title))
}

func (m Model) remove() Model {
	id, ok := m.selectedID()
	if !ok {
		return m
	}
	err := m.svc.Remove(id)
	m.refresh()
	if err != nil {
		return m.staleOrFail(err)
	}
	return m.ok(fmt.Sprintf("Deleted task %d", id))
}

// staleOrFail reports a failed toggle or remove. The list has already been
// refreshed, so a NotFound from a stale id needs nothing more than a notice.
func (m Model) staleOrFail(err error) Model {
	if errors.Is(err, service.ErrNotFound) {
		return m.fail("That task no longer exists")
	}
	return m.fail(err.Error())
}

// selectedID returns the stored id under the cursor. Tasks are addressed
// by id, never by position.
func (m Model) selectedID() (int, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return 0, false
	}
	return m.tasks[m.cursor].ID, true
}

func (m *Model) refresh() {
	m.tasks = m.svc.List()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) focusOnInput() (Model, tea.Cmd) {
	m.focus = focusInput
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) focusOnList() Model {
	m.focus = focusList
	m.input.Blur()
	return m
}

func (m Model) ok(status string) Model {
	m.status, m.statusErr = status, false
	return m
}

func (m Model) fail(status string) Model {
	m.status, m.statusErr = status, true
	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todo List"))
	b.WriteString("\n")

	b.WriteString(m.input.View())
	b.WriteString("  ")
	b.WriteString(buttonStyle.Render("Add"))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(dimStyle.Render("No tasks yet. Type a title and press enter."))
		b.WriteString("\n")
	}
	done := 0
	for i, task := range m.tasks {
		if task.Completed {
			done++
		}
		b.WriteString(m.renderRow(i, task))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(output.Summary(len(m.tasks), done)))
	b.WriteString("\n")

	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderRow(i int, task service.Task) string {
	pointer := "  "
	if m.focus == focusList && i == m.cursor {
		pointer = cursorStyle.Render("> ")
	}
	style := openStyle
	if task.Completed {
		style = completedStyle
	}
	return pointer + output.Mark(task) + " " + style.Render(task.Title)
}

func (m Model) helpLine() string {
	if m.focus == focusInput {
		return "enter: add • tab: list • ctrl+c: quit"
	}
	return "↑/↓: move • space: toggle • d: delete • a: new task • q: quit"
}
