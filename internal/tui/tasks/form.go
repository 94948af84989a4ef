package tasks

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/tui/theme"
)

var (
	formLabelStyle   = lipgloss.NewStyle().Foreground(theme.Secondary).Width(14)
	formErrorStyle   = lipgloss.NewStyle().Foreground(theme.Danger)
	formBoxStyle     = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Padding(0, 1)
	formFocusedStyle = formBoxStyle.BorderForeground(theme.BorderFocused)
)

// FormField is the form input with keyboard focus.
type FormField int

const (
	FieldTitle FormField = iota
	FieldDescription
)

// FormModel holds the two text inputs of the task form. It is only an input
// surface: the controller owns the values and the form mirrors them.
type FormModel struct {
	title       textinput.Model
	description textinput.Model
	focused     FormField
	active      bool
	Error       string
	Width       int
}

// NewForm creates the task form.
func NewForm() FormModel {
	title := textinput.New()
	title.Placeholder = "Title"

	description := textinput.New()
	description.Placeholder = "Description"

	return FormModel{
		title:       title,
		description: description,
		Width:       60,
	}
}

// Focus activates the form on the given field.
func (m *FormModel) Focus(field FormField) tea.Cmd {
	m.active = true
	m.focused = field
	if field == FieldDescription {
		m.title.Blur()
		return m.description.Focus()
	}
	m.description.Blur()
	return m.title.Focus()
}

// Blur deactivates the form.
func (m *FormModel) Blur() {
	m.active = false
	m.title.Blur()
	m.description.Blur()
}

// Active reports whether the form has keyboard focus.
func (m *FormModel) Active() bool {
	return m.active
}

// NextField moves focus to the other field.
func (m *FormModel) NextField() tea.Cmd {
	if m.focused == FieldTitle {
		return m.Focus(FieldDescription)
	}
	return m.Focus(FieldTitle)
}

// SetValues replaces both field values.
func (m *FormModel) SetValues(title, description string) {
	m.title.SetValue(title)
	m.description.SetValue(description)
	m.Error = ""
}

// Title returns the title field value.
func (m *FormModel) Title() string {
	return m.title.Value()
}

// Description returns the description field value.
func (m *FormModel) Description() string {
	return m.description.Value()
}

// SetWidth sets the outer box width and the inner inputs' widths.
func (m *FormModel) SetWidth(w int) {
	// Account for border (2) and padding (2)
	m.Width = w - 4
	inner := m.Width - formLabelStyle.GetWidth()
	if inner < 10 {
		inner = 10
	}
	m.title.Width = inner
	m.description.Width = inner
}

// Update forwards a message to the focused input.
func (m *FormModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.focused == FieldDescription {
		m.description, cmd = m.description.Update(msg)
	} else {
		m.title, cmd = m.title.Update(msg)
	}

	// Clear error when user types
	if _, ok := msg.(tea.KeyMsg); ok {
		m.Error = ""
	}
	return cmd
}

// View renders the form. submitLabel names what enter does.
func (m *FormModel) View(submitLabel string, editing bool) string {
	var b strings.Builder

	b.WriteString(formLabelStyle.Render("Title:") + m.title.View() + "\n")
	b.WriteString(formLabelStyle.Render("Description:") + m.description.View() + "\n")

	if m.Error != "" {
		b.WriteString(formErrorStyle.Render("Error: "+m.Error) + "\n")
	}

	hints := "[enter] " + submitLabel + "  [tab] next field"
	if editing {
		hints += "  [esc] cancel edit"
	} else {
		hints += "  [esc] back to list"
	}
	b.WriteString(theme.HelpHint.Render(hints))

	style := formBoxStyle
	if m.active {
		style = formFocusedStyle
	}
	return style.Width(m.Width).Render(b.String())
}
