package memory

import (
	"context"
	"net/http"
	"net/url"
)

// ProjectService handles the projects known to the API.
type ProjectService struct {
	client *Client
}

// List returns all projects and the name of the API-wide default project.
func (s *ProjectService) List(ctx context.Context) (*ProjectList, error) {
	u := s.client.baseURL.ResolveReference(&url.URL{Path: "projects/projects"})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	var list ProjectList
	if _, err := s.client.do(req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// URL returns the base URL of project p; resource paths are appended to it.
func (s *ProjectService) URL(p Project) string {
	return s.client.baseURL.ResolveReference(&url.URL{Path: p.Slug()}).String()
}
