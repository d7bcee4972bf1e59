package rest

import (
	"errors"
	"fmt"
)

// APIError is the server's error envelope for any non-2xx response.
type APIError struct {
	Status  int               `json:"status"`
	Name    string            `json:"error,omitempty"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// ServerMessage exposes the server-supplied message to callers that do not
// depend on this package's types.
func (e *APIError) ServerMessage() string {
	return e.Message
}

// ErrorMessage extracts the server-supplied message from err, falling back
// to the given string when the server sent none.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
