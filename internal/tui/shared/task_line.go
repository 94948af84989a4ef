package shared

import (
	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/tasks/data"
	"taskpad/internal/tui/theme"
)

// StyledTaskLine renders a task on a single line: title, then a plain-text
// summary of the description cut down to fit width. A width <= 0 disables truncation.
// Format: Title  description summary
func StyledTaskLine(t data.Task, width int) string {
	title := theme.Bold.Render(t.Title)
	summary := OneLine(t.Description)
	if summary == "" {
		return title
	}

	if width > 0 {
		room := width - lipgloss.Width(title) - 2
		if room <= 1 {
			return title
		}
		summary = Truncate(summary, room)
	}

	return title + "  " + theme.Muted.Render(summary)
}

// Truncate shortens s to at most width cells, ending with an ellipsis when cut.
func Truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
