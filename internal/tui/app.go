package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/tui/shared"
	taskview "taskpad/internal/tui/tasks"
	"taskpad/internal/tui/theme"
)

// Reserve space for status bar (border + text)
const statusBarHeight = 2

// AppModel is the root model. It owns the window size, the status bar and the
// help overlay, and hands everything else to the task list.
type AppModel struct {
	taskList taskview.TaskListModel
	endpoint string
	showHelp bool
	width    int
	height   int
	ready    bool
}

// NewAppModel creates the root application model. endpoint is only displayed.
func NewAppModel(ctrl *taskview.Controller, endpoint string) AppModel {
	return AppModel{
		taskList: taskview.NewTaskListModel(ctrl),
		endpoint: endpoint,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.taskList.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.taskList.SetSize(msg.Width, msg.Height-statusBarHeight)
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// Typing in the form, the search or the prompt goes to the task list.
		if !m.taskList.IsInModalState() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup(helpSections, m.width, m.height)
	}

	statusText := "taskpad | " + m.endpoint + " | ?:help | q:quit"
	statusBar := theme.StatusBar.Width(m.width).Render(
		theme.HelpHint.Render(statusText),
	)

	return lipgloss.JoinVertical(lipgloss.Left, m.taskList.View(), statusBar)
}

var helpSections = []shared.HelpSection{
	{
		Title: "taskpad - Keyboard Shortcuts",
	},
	{
		Title: "Global",
		Binds: []shared.HelpBind{
			{Key: "?", Desc: "Show this help"},
			{Key: "q", Desc: "Quit"},
			{Key: "ctrl+c", Desc: "Force quit"},
		},
	},
	{
		Title: "Task List",
		Binds: []shared.HelpBind{
			{Key: "j / k", Desc: "Navigate tasks"},
			{Key: "g / G", Desc: "First / last task"},
			{Key: "enter / e", Desc: "Edit task"},
			{Key: "n / tab", Desc: "Focus the form"},
			{Key: "D / x", Desc: "Delete task"},
			{Key: "/", Desc: "Search"},
			{Key: "esc", Desc: "Cancel edit"},
		},
	},
	{
		Title: "Form",
		Binds: []shared.HelpBind{
			{Key: "tab", Desc: "Next field"},
			{Key: "enter", Desc: "Add or update task"},
			{Key: "esc", Desc: "Cancel edit / back to list"},
			{Key: "ctrl+r", Desc: "Restore input of a failed submit"},
		},
	},
}
