package printer

import (
	"encoding/json"
	"io"

	"taskpad/internal/tasks/data"
)

// JSONPrinter prints task information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintList prints tasks as a JSON array, in the shape the API returns them.
func (j *JSONPrinter) PrintList(tasks []data.Task) error {
	if tasks == nil {
		tasks = []data.Task{}
	}
	return j.encode(tasks)
}

// PrintTask prints a task as a JSON object.
func (j *JSONPrinter) PrintTask(task data.Task) error {
	return j.encode(task)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
