package tasks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"taskpad/internal/tasks/data"
	"taskpad/internal/tui/shared"
	"taskpad/internal/tui/theme"
)

var (
	cursorStyle = lipgloss.NewStyle().Foreground(theme.Success)
	searchStyle = lipgloss.NewStyle().Foreground(theme.Success)
	noticeStyle = lipgloss.NewStyle().Foreground(theme.Danger)
	modeStyle   = theme.NavActive
	hintStyle   = theme.HelpHint
)

// TaskListModel is the task form and list screen. All state that matters lives in
// the controller; this model adds focus, cursor, search and rendering.
type TaskListModel struct {
	ctrl *Controller

	form   FormModel
	prompt *DeletePrompt

	// Navigation
	cursor       int
	scrollOffset int

	// Display-only search over the loaded tasks
	searchActive bool
	searchInput  textinput.Model
	display      []data.Task

	spinner spinner.Model

	width  int
	height int
}

// NewTaskListModel creates the task list screen around ctrl.
func NewTaskListModel(ctrl *Controller) TaskListModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Secondary)

	m := TaskListModel{
		ctrl:    ctrl,
		form:    NewForm(),
		spinner: sp,
		width:   80,
		height:  24,
	}
	m.refreshDisplay()
	return m
}

// Init runs the initial load.
func (m TaskListModel) Init() tea.Cmd {
	return tea.Batch(m.ctrl.Init(), m.spinner.Tick)
}

// SetSize updates the dimensions
func (m *TaskListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.form.SetWidth(width)
	m.ensureCursorVisible()
}

// Controller returns the underlying controller.
func (m *TaskListModel) Controller() *Controller {
	return m.ctrl
}

// IsInModalState returns true when keys should not be handled globally
// (form typing, search typing or the delete prompt).
func (m *TaskListModel) IsInModalState() bool {
	return m.form.Active() || m.searchActive || m.prompt != nil
}

// Update handles messages for the task list
func (m TaskListModel) Update(msg tea.Msg) (TaskListModel, tea.Cmd) {
	if m.ctrl.Handle(msg) {
		m.refreshDisplay()
		return m, nil
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case DeletePromptResultMsg:
		m.prompt = nil
		if !msg.Confirmed {
			return m, nil
		}
		return m, m.ctrl.Delete(msg.ID)

	case tea.KeyMsg:
		if m.prompt != nil {
			return m, m.prompt.Update(msg)
		}
		if msg.String() == "ctrl+r" {
			return m.restore()
		}
		if m.searchActive {
			return m.handleSearchKeys(msg)
		}
		if m.form.Active() {
			return m.handleFormKeys(msg)
		}
		return m.handleListKeys(msg)
	}

	// Blink and other input messages
	if m.form.Active() {
		return m, m.form.Update(msg)
	}
	if m.searchActive {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m TaskListModel) handleListKeys(msg tea.KeyMsg) (TaskListModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.cursor = 0
		m.ensureCursorVisible()
	case "G", "end":
		m.cursor = len(m.display) - 1
		m.ensureCursorVisible()
	case "enter", "e":
		return m.startEdit()
	case "n", "a", "tab":
		return m, m.form.Focus(FieldTitle)
	case "D", "x":
		return m.startDelete()
	case "/":
		return m.startSearch()
	case "esc":
		if m.ctrl.Mode() == ModeUpdate {
			m.cancelEdit()
		}
	}
	return m, nil
}

func (m TaskListModel) handleFormKeys(msg tea.KeyMsg) (TaskListModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submit()
	case "tab", "shift+tab":
		return m, m.form.NextField()
	case "esc":
		if m.ctrl.Mode() == ModeUpdate {
			m.cancelEdit()
		}
		m.form.Blur()
		return m, nil
	}

	// Only a field the key changed is copied back. The inputs show values on one
	// line, so an untouched field keeps the controller's value as it was.
	title, description := m.form.Title(), m.form.Description()
	cmd := m.form.Update(msg)
	if m.form.Title() != title {
		m.ctrl.SetTitle(m.form.Title())
	}
	if m.form.Description() != description {
		m.ctrl.SetDescription(m.form.Description())
	}
	return m, cmd
}

func (m TaskListModel) handleSearchKeys(msg tea.KeyMsg) (TaskListModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Keep the filter, leave typing mode
		m.searchActive = false
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.searchActive = false
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.refreshDisplay()
		return m, nil
	case "up", "ctrl+k":
		m.moveCursor(-1)
		return m, nil
	case "down", "ctrl+j":
		m.moveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	// Live filter on every keystroke
	m.refreshDisplay()
	return m, cmd
}

// Actions

func (m TaskListModel) submit() (TaskListModel, tea.Cmd) {
	cmd, err := m.ctrl.Submit()
	if err != nil {
		if errors.Is(err, data.ErrNotValid) {
			m.form.Error = err.Error()
			return m, nil
		}
		m.form.Error = fmt.Sprintf("could not submit: %v", err)
		return m, nil
	}

	m.syncForm()
	return m, cmd
}

func (m TaskListModel) startEdit() (TaskListModel, tea.Cmd) {
	task := m.selectedTask()
	if task == nil {
		return m, nil
	}
	m.ctrl.Edit(*task)
	m.syncForm()
	return m, m.form.Focus(FieldTitle)
}

func (m *TaskListModel) cancelEdit() {
	m.ctrl.CancelEdit()
	m.syncForm()
}

func (m TaskListModel) restore() (TaskListModel, tea.Cmd) {
	if !m.ctrl.Restore() {
		return m, nil
	}
	m.syncForm()
	return m, m.form.Focus(FieldTitle)
}

func (m TaskListModel) startDelete() (TaskListModel, tea.Cmd) {
	task := m.selectedTask()
	if task == nil {
		return m, nil
	}
	m.prompt = NewDeletePrompt(*task, 50)
	return m, nil
}

func (m TaskListModel) startSearch() (TaskListModel, tea.Cmd) {
	query := m.searchInput.Value()
	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "type to filter..."
	m.searchInput.CharLimit = 256
	m.searchInput.Width = 40
	m.searchInput.SetValue(query)
	m.searchActive = true
	return m, m.searchInput.Focus()
}

// Helpers

// syncForm copies the controller's form values into the inputs.
func (m *TaskListModel) syncForm() {
	f := m.ctrl.Form()
	m.form.SetValues(f.Title, f.Description)
}

// refreshDisplay recomputes the visible rows from the controller's collection.
func (m *TaskListModel) refreshDisplay() {
	all := m.ctrl.Tasks()

	query := strings.TrimSpace(m.searchInput.Value())
	if query == "" {
		m.display = all
	} else {
		sources := make([]string, len(all))
		for i, t := range all {
			sources[i] = t.Title + " " + shared.OneLine(t.Description)
		}
		matches := fuzzy.Find(query, sources)
		m.display = make([]data.Task, len(matches))
		for i, match := range matches {
			m.display[i] = all[match.Index]
		}
	}

	// Clamp cursor
	if m.cursor >= len(m.display) {
		m.cursor = len(m.display) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *TaskListModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.display) {
		m.cursor = len(m.display) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *TaskListModel) selectedTask() *data.Task {
	if m.cursor >= 0 && m.cursor < len(m.display) {
		t := m.display[m.cursor]
		return &t
	}
	return nil
}

// visibleTaskRows returns the number of task lines that fit under the form.
// Header (2) + form box (5, 6 with an error) + gap (1) + status (1) + hints (1).
func (m *TaskListModel) visibleTaskRows() int {
	used := 10
	if m.form.Error != "" {
		used++
	}
	if m.searchActive || m.searchInput.Value() != "" {
		used++
	}
	visible := m.height - used
	if visible < 1 {
		visible = 1
	}
	return visible
}

// ensureCursorVisible adjusts scrollOffset so the cursor is within the visible window.
func (m *TaskListModel) ensureCursorVisible() {
	visible := m.visibleTaskRows()
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the task list screen
func (m TaskListModel) View() string {
	if m.prompt != nil {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.prompt.View(),
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	var b strings.Builder

	mode := m.ctrl.Mode()
	header := theme.Title.Render("Task Manager") + "  " + modeStyle.Render("["+mode.String()+"]")
	if editing := m.ctrl.Form().Editing; editing != nil {
		header += "  " + theme.Muted.Render("editing "+editing.ID.String())
	}
	b.WriteString(header + "\n\n")

	submitLabel := "Add Task"
	if mode == ModeUpdate {
		submitLabel = "Update Task"
	}
	b.WriteString(m.form.View(submitLabel, mode == ModeUpdate))
	b.WriteString("\n\n")

	if m.searchActive || m.searchInput.Value() != "" {
		b.WriteString(searchStyle.Render("/") + m.searchInput.View() + "\n")
	}

	b.WriteString(m.renderTasks())

	hints := hintStyle.Render(m.hints())
	return shared.CenterWithBottomHints(b.String(), m.renderStatus()+"\n"+hints, m.height)
}

func (m *TaskListModel) renderTasks() string {
	var b strings.Builder

	if len(m.display) == 0 {
		if len(m.ctrl.Tasks()) == 0 {
			b.WriteString(theme.Muted.Render("No tasks yet."))
		} else {
			b.WriteString(theme.Muted.Render("No tasks match the search."))
		}
		return b.String()
	}

	visible := m.visibleTaskRows()
	end := m.scrollOffset + visible
	if end > len(m.display) {
		end = len(m.display)
	}

	editing := m.ctrl.Form().Editing
	for i := m.scrollOffset; i < end; i++ {
		task := m.display[i]
		prefix := "  "
		if i == m.cursor && !m.form.Active() {
			prefix = cursorStyle.Render("> ")
		}
		line := shared.StyledTaskLine(task, m.width-4)
		if editing != nil && editing.ID == task.ID {
			line = theme.Selected.Render("* ") + line
		}
		b.WriteString(prefix + line + "\n")
	}

	return b.String()
}

func (m *TaskListModel) renderStatus() string {
	var parts []string
	if n := m.ctrl.InFlight(); n > 0 {
		parts = append(parts, m.spinner.View()+fmt.Sprintf(" %d request(s) in flight", n))
	}
	if notice := m.ctrl.Notice(); notice != "" {
		parts = append(parts, noticeStyle.Render(notice))
	}
	return strings.Join(parts, "  ")
}

func (m *TaskListModel) hints() string {
	switch {
	case m.searchActive:
		return "type to filter  up/down:navigate  enter:keep  esc:clear"
	case m.form.Active():
		return "enter:submit  tab:next field  esc:back"
	case m.ctrl.Mode() == ModeUpdate:
		return "j/k:navigate  e:edit  n:form  D:delete  /:search  esc:cancel edit  ?:help"
	default:
		return "j/k:navigate  e:edit  n:new task  D:delete  /:search  ?:help  q:quit"
	}
}
