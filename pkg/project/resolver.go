// Package project decides which project a tool call targets.
package project

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bttk/canvas-mcp/pkg/memory"
)

var (
	// ErrProjectNotFound means the requested project does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrNoActiveProject means no project was requested and no default is set.
	ErrNoActiveProject = errors.New("no active project")
)

// ResolutionError is returned when no target project could be determined.
type ResolutionError struct {
	Project string
	Err     error
}

func (e *ResolutionError) Error() string {
	if e.Project == "" {
		return fmt.Sprintf("resolve project: %v", e.Err)
	}
	return fmt.Sprintf("resolve project %q: %v", e.Project, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Lister lists the projects known to the backing API.
type Lister interface {
	List(ctx context.Context) (*memory.ProjectList, error)
	URL(p memory.Project) string
}

// Active is a resolved project.
type Active struct {
	Name      string
	Permalink string
	URL       string
}

// Resolver resolves project selectors against the projects of Lister.
//
// Default is the project used when neither the call nor the session names one.
// When it is empty the API's own default project is used.
type Resolver struct {
	Lister  Lister
	Default string
}

// NewResolver returns a resolver with a fallback project name.
func NewResolver(l Lister, defaultProject string) *Resolver {
	return &Resolver{Lister: l, Default: defaultProject}
}

// Resolve returns the project named by override, or the session project of
// ctx, or the configured default, or the API default, in that order.
func (r *Resolver) Resolve(ctx context.Context, override string) (*Active, error) {
	name := override
	if name == "" {
		name = Session(ctx)
	}
	if name == "" {
		name = r.Default
	}

	list, err := r.Lister.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	if name == "" {
		name = list.DefaultProject
	}
	if name == "" {
		for _, p := range list.Projects {
			if p.IsDefault {
				name = p.Name
				break
			}
		}
	}
	if name == "" {
		return nil, &ResolutionError{Err: ErrNoActiveProject}
	}

	p, ok := find(list.Projects, name)
	if !ok {
		return nil, &ResolutionError{Project: name, Err: ErrProjectNotFound}
	}
	return &Active{Name: p.Name, Permalink: p.Slug(), URL: r.Lister.URL(p)}, nil
}

func find(projects []memory.Project, selector string) (memory.Project, bool) {
	slug := memory.Permalink(selector)
	for _, p := range projects {
		if strings.EqualFold(p.Name, selector) || p.Slug() == slug {
			return p, true
		}
	}
	return memory.Project{}, false
}
