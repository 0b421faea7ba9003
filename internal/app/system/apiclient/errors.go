package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNetwork wraps transport failures: DNS, refused connections, timeouts
// and cancelled uploads. No HTTP status is available for these.
var ErrNetwork = errors.New("network error")

// Error is a non-2xx response from the API.
type Error struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// Describe renders err for a toast: "404: Category not found" for API
// errors, a fixed sentence for network failures.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%d: %s", apiErr.Status, apiErr.Message)
	}
	if errors.Is(err, ErrNetwork) {
		return "Network error: the server could not be reached."
	}
	return err.Error()
}

// errorMessage extracts a human-readable message from an error body.
// It understands {"message": ...}, {"error": ...} and Laravel-style
// {"errors": {"field": ["..."]}} payloads.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string                     `json:"message"`
		Error   any                        `json:"error"`
		Errors  map[string]json.RawMessage `json:"errors"`
	}
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
		if s, ok := payload.Error.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		for _, raw := range payload.Errors {
			var list []string
			if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
				return list[0]
			}
			var one string
			if json.Unmarshal(raw, &one) == nil && one != "" {
				return one
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Unexpected response"
}
