package printer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/printer"
	"taskpad/internal/tasks/data"
)

func tasksFixture() []data.Task {
	return []data.Task{
		{ID: data.ParseID("1"), Title: "Buy milk", Description: "at the **store**"},
		{ID: data.ParseID("abc"), Title: "Write report", Description: "quarterly"},
	}
}

func TestTablePrinterPrintList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintList(tasksFixture())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Regexp(t, `^ID\s+TITLE\s+DESCRIPTION$`, lines[0])
	assert.Regexp(t, `^1\s+Buy milk\s+at the \*\*store\*\*$`, lines[1])
	assert.Regexp(t, `^abc\s+Write report\s+quarterly$`, lines[2])
}

func TestTablePrinterPrintEmptyList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintList(nil)
	require.NoError(t, err)
	assert.Equal(t, "No tasks found.", strings.TrimSpace(buf.String()))
}

func TestTablePrinterPrintTask(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTask(tasksFixture()[0])
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID:          1")
	assert.Contains(t, out, "Title:       Buy milk")
	assert.Contains(t, out, "Description: at the **store**")
}

func TestJSONPrinterPrintList(t *testing.T) {
	tests := map[string]struct {
		tasks  []data.Task
		expOut string
	}{
		"An empty list should print an empty array.": {
			tasks:  nil,
			expOut: "[]\n",
		},

		"Ids should keep the type the server used.": {
			tasks: tasksFixture(),
			expOut: `[
  {
    "id": 1,
    "title": "Buy milk",
    "description": "at the **store**"
  },
  {
    "id": "abc",
    "title": "Write report",
    "description": "quarterly"
  }
]
`,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			p := printer.NewJSONPrinter(&buf)

			err := p.PrintList(test.tasks)
			require.NoError(t, err)
			assert.Equal(t, test.expOut, buf.String())
		})
	}
}

func TestJSONPrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.New(printer.FormatJSON, &buf)

	err := p.PrintMessage("ok")
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"ok"}`, buf.String())
}
