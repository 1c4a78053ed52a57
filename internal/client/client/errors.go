package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable wraps transport failures: the request never reached the
	// server or the response could not be read. No status code is known.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the session could not be recovered by a refresh
	// and has been cleared. Callers should ask the user to log in again.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response other than a recoverable 401.
type APIError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error (%d)", e.Status)
	}
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Message)
}

var messageFields = []string{"message", "error", "title", "detail"}

// newAPIError prefers a structured message field over the raw body text.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status, Body: body}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err == nil {
		for _, f := range messageFields {
			if s, ok := doc[f].(string); ok && strings.TrimSpace(s) != "" {
				e.Message = s
				return e
			}
		}
	}

	e.Message = strings.TrimSpace(string(body))
	return e
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
