package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ResourceService writes raw resources into a project.
type ResourceService struct {
	client *Client
}

// Put writes content to path inside the project at projectURL.
//
// The API expects the body to be a JSON string literal holding the file
// content, so content is encoded once more here even when it is JSON itself.
func (s *ResourceService) Put(ctx context.Context, projectURL, path, content string) (*WriteResult, error) {
	u, err := resourceURL(projectURL, path)
	if err != nil {
		return nil, err
	}

	body, err := encodeJSON(content)
	if err != nil {
		return nil, fmt.Errorf("encode resource body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var raw json.RawMessage
	status, err := s.client.do(req, &raw)
	if err != nil {
		return nil, err
	}
	return &WriteResult{StatusCode: status, Body: raw}, nil
}

// resourceURL appends "/resource/{path}" to projectURL without cleaning path.
func resourceURL(projectURL, path string) (*url.URL, error) {
	u, err := url.Parse(projectURL)
	if err != nil {
		return nil, fmt.Errorf("invalid project url %q: %w", projectURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/resource/" + path
	u.RawPath = ""
	return u, nil
}
