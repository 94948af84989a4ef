package shared

import "strings"

// OneLine collapses runs of whitespace, newlines included, into single spaces.
// Nothing else about the text changes.
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
