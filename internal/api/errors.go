package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrUnauthorized is matched by errors from 401 responses
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response from the backend
type APIError struct {
	Status int
	Detail string
	// Fields holds the first message reported for each field
	Fields map[string]string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "api error (status %d)", e.Status)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for i, name := range names {
			if i == 0 && e.Detail == "" {
				b.WriteString(": ")
			} else {
				b.WriteString("; ")
			}
			fmt.Fprintf(&b, "%s: %s", name, e.Fields[name])
		}
	}
	return b.String()
}

// Unwrap lets errors.Is match ErrUnauthorized on 401 responses
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// parseError reads a DRF-style error body: {"detail": "..."} and/or
// {"field": ["message", ...]}.
func parseError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		apiErr.Detail = strings.TrimSpace(string(body))
		if apiErr.Detail == "" {
			apiErr.Detail = http.StatusText(status)
		}
		return apiErr
	}

	for key, value := range raw {
		msg := firstMessage(value)
		if msg == "" {
			continue
		}
		if key == "detail" || key == "non_field_errors" {
			if apiErr.Detail == "" {
				apiErr.Detail = msg
			}
			continue
		}
		if apiErr.Fields == nil {
			apiErr.Fields = map[string]string{}
		}
		apiErr.Fields[key] = msg
	}

	if apiErr.Detail == "" && len(apiErr.Fields) == 0 {
		apiErr.Detail = http.StatusText(status)
	}
	return apiErr
}

func firstMessage(value json.RawMessage) string {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(value, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}
