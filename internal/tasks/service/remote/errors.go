package remote

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"taskpad/internal/tasks/data"
)

// APIError is returned for any non 2xx response.
type APIError struct {
	Method     string
	StatusCode int
	// Message is the server's {"message": ...} text, or the raw body when absent.
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed with status %d", e.Method, e.StatusCode)
	}
	return fmt.Sprintf("%s failed with status %d: %s", e.Method, e.StatusCode, e.Message)
}

// Is lets errors.Is match 404 responses against data.ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == data.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Raw bodies longer than this are cut in error messages.
const maxMessageRunes = 200

func newAPIError(method string, status int, body []byte) *APIError {
	apiErr := &APIError{Method: method, StatusCode: status}

	var msg struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &msg); err == nil && msg.Message != "" {
		apiErr.Message = msg.Message
		return apiErr
	}

	raw := strings.TrimSpace(string(body))
	if runes := []rune(raw); len(runes) > maxMessageRunes {
		raw = string(runes[:maxMessageRunes])
	}
	apiErr.Message = raw
	return apiErr
}
