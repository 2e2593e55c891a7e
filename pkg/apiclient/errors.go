package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error is a non-2xx answer from the backend.
type Error struct {
	Operation  string
	StatusCode int
	// Message is the backend's human readable reason, empty when the body
	// carried none.
	Message string
	Body    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s http error: status=%d message=%s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s http error: status=%d body=%s", e.Operation, e.StatusCode, e.Body)
}

func newError(op string, status int, raw []byte) *Error {
	return &Error{
		Operation:  op,
		StatusCode: status,
		Message:    ExtractMessage(raw),
		Body:       strings.TrimSpace(string(raw)),
	}
}

// ExtractMessage pulls "message", then "detail", then "error" out of a JSON
// object body.
func ExtractMessage(raw []byte) string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	for _, key := range []string{"message", "detail", "error"} {
		value, ok := body[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// MessageOf returns the backend message carried by err, if any.
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsTransient reports whether err left the backend's answer unknown.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrNetwork) || errors.Is(err, ErrAborted)
}
