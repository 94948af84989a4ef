package printer

import (
	"io"

	"taskpad/internal/tasks/data"
)

// Printer knows how to print task information in different formats.
type Printer interface {
	PrintList(tasks []data.Task) error
	PrintTask(task data.Task) error
	PrintMessage(msg string) error
}

// New returns the printer for format ("table" or "json").
func New(format string, w io.Writer) Printer {
	if format == FormatJSON {
		return NewJSONPrinter(w)
	}
	return NewTablePrinter(w)
}

const (
	// FormatTable is the human readable format.
	FormatTable = "table"
	// FormatJSON is the machine readable format.
	FormatJSON = "json"
)
