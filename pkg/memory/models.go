package memory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Project is a project (backing store) known to the API.
type Project struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Permalink string `json:"permalink,omitempty"`
	IsDefault bool   `json:"is_default"`
}

// Slug returns the permalink of the project, deriving it from the name when the API left it out.
func (p Project) Slug() string {
	if p.Permalink != "" {
		return p.Permalink
	}
	return Permalink(p.Name)
}

// ProjectList is the response of the project listing endpoint.
type ProjectList struct {
	Projects       []Project `json:"projects"`
	DefaultProject string    `json:"default_project"`
}

// WriteResult is the outcome of a successful resource write.
type WriteResult struct {
	StatusCode int
	Body       json.RawMessage
}

// ErrorResponse represents a non-success response returned by the API.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"-"`
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("API error: status code %d", e.StatusCode)
	}
	return fmt.Sprintf("API error: status code %d: %s", e.StatusCode, e.Detail)
}

func newErrorResponse(status int, body []byte) *ErrorResponse {
	e := &ErrorResponse{StatusCode: status, Detail: strings.TrimSpace(string(body))}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return e
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		e.Detail = s
		return e
	}
	e.Detail = string(bytes.TrimSpace(payload.Detail))
	return e
}

// TransportError is returned when the API could not be reached or the response could not be read.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Permalink converts a project name into its URL slug: lower case letters and
// digits separated by single hyphens.
func Permalink(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
