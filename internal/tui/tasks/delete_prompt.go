package tasks

import (
	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/tasks/data"
	"taskpad/internal/tui/shared"
	"taskpad/internal/tui/theme"
)

// DeletePrompt asks for confirmation before a task is deleted.
type DeletePrompt struct {
	Task  data.Task
	Width int
}

// DeletePromptResultMsg is sent when the prompt is answered.
type DeletePromptResultMsg struct {
	ID        data.ID
	Confirmed bool
}

// NewDeletePrompt creates a delete confirmation for task.
func NewDeletePrompt(task data.Task, width int) *DeletePrompt {
	return &DeletePrompt{Task: task, Width: width}
}

// Update handles key events for the prompt
func (m *DeletePrompt) Update(msg tea.KeyMsg) tea.Cmd {
	id := m.Task.ID
	switch msg.String() {
	case "y", "enter":
		return func() tea.Msg {
			return DeletePromptResultMsg{ID: id, Confirmed: true}
		}
	case "n", "esc":
		return func() tea.Msg {
			return DeletePromptResultMsg{ID: id, Confirmed: false}
		}
	}
	return nil
}

// View renders the prompt
func (m *DeletePrompt) View() string {
	content := theme.ModalTitle.Render("Delete task?") + "\n\n"
	content += theme.Bold.Render(m.Task.Title) + "\n"
	if summary := shared.OneLine(m.Task.Description); summary != "" {
		content += theme.Muted.Render(shared.Truncate(summary, m.Width-6)) + "\n"
	}
	content += "\n"
	content += theme.Ok.Render("[y]") + " Yes  "
	content += theme.Error.Render("[n/esc]") + " No"

	return theme.ModalBox.Width(m.Width).Render(content)
}
