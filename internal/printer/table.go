package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"taskpad/internal/tasks/data"
	"taskpad/internal/tui/shared"
)

// Longer descriptions are cut in list rows.
const maxDescriptionWidth = 60

// TablePrinter prints task information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintList prints tasks in a table format.
func (t *TablePrinter) PrintList(tasks []data.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(t.writer, "No tasks found.")
		return err
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header
	fmt.Fprintln(tw, "ID\tTITLE\tDESCRIPTION")

	// Print rows
	for _, task := range tasks {
		summary := shared.Truncate(shared.OneLine(task.Description), maxDescriptionWidth)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", task.ID, task.Title, summary)
	}

	return nil
}

// PrintTask prints a single task.
func (t *TablePrinter) PrintTask(task data.Task) error {
	fmt.Fprintf(t.writer, "ID:          %s\n", task.ID)
	fmt.Fprintf(t.writer, "Title:       %s\n", task.Title)
	fmt.Fprintf(t.writer, "Description: %s\n", task.Description)
	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
