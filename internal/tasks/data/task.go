package data

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned when the server has no task with the requested id.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when a task is missing a required field.
	ErrNotValid = errors.New("not valid")
)

// ID is the server assigned task identifier. The client never interprets it: the raw
// JSON token the server sent (a number or a string) is kept and sent back unchanged.
// The zero value means "no id".
type ID struct {
	raw string
}

// ParseID builds an ID from user input. Numeric input is sent as a JSON number,
// anything else as a JSON string.
func ParseID(s string) ID {
	s = strings.TrimSpace(s)
	if s == "" {
		return ID{}
	}
	if json.Valid([]byte(s)) {
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return ID{raw: s}
		}
	}
	quoted, _ := json.Marshal(s)
	return ID{raw: string(quoted)}
}

// IsZero reports whether the id is absent.
func (id ID) IsZero() bool {
	return id.raw == ""
}

// String returns the id as shown to the user.
func (id ID) String() string {
	if strings.HasPrefix(id.raw, `"`) {
		var s string
		if err := json.Unmarshal([]byte(id.raw), &s); err == nil {
			return s
		}
	}
	return id.raw
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.raw == "" {
		return []byte("null"), nil
	}
	return []byte(id.raw), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ID{}
		return nil
	}
	if len(b) == 0 || (b[0] != '"' && b[0] != '-' && (b[0] < '0' || b[0] > '9')) {
		return fmt.Errorf("task id must be a number or a string, got %s", b)
	}
	*id = ID{raw: string(b)}
	return nil
}

// Task is the server's representation of a task.
type Task struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewTask is the payload of a create request.
type NewTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// deleteRequest is the payload of a delete request.
type deleteRequest struct {
	ID ID `json:"id"`
}

// DeletePayload returns the body sent to delete the task with the given id.
func DeletePayload(id ID) any {
	return deleteRequest{ID: id}
}

func (t Task) String() string {
	return fmt.Sprintf("%s: %s", t.ID, t.Title)
}

// Validate checks the fields the form requires.
func Validate(title, description string) error {
	var missing []string
	if strings.TrimSpace(title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s required: %w", strings.Join(missing, " and "), ErrNotValid)
	}
	return nil
}
