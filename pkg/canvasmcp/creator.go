package canvasmcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/bttk/canvas-mcp/pkg/canvas"
	"github.com/bttk/canvas-mcp/pkg/memory"
	"github.com/bttk/canvas-mcp/pkg/project"
)

// ErrMissingTitle is returned when a canvas request has no title.
var ErrMissingTitle = errors.New("title is required")

// ProjectResolver picks the project a request writes into.
type ProjectResolver interface {
	Resolve(ctx context.Context, override string) (*project.Active, error)
}

// ResourceWriter stores a file inside a project.
type ResourceWriter interface {
	Put(ctx context.Context, projectURL, path, content string) (*memory.WriteResult, error)
}

// Request is the input of the canvas tool.
type Request struct {
	Nodes   []canvas.Node `json:"nodes"`
	Edges   []canvas.Edge `json:"edges"`
	Title   string        `json:"title"`
	Folder  string        `json:"folder"`
	Project string        `json:"project,omitempty"`
}

// Creator writes canvas files through the resource API.
type Creator struct {
	projects  ProjectResolver
	resources ResourceWriter
}

// NewCreator returns a Creator using the given collaborators.
func NewCreator(projects ProjectResolver, resources ResourceWriter) *Creator {
	return &Creator{projects: projects, resources: resources}
}

// NewClientCreator wires a Creator to client, falling back to defaultProject
// when neither the request nor the session names a project.
func NewClientCreator(client *memory.Client, defaultProject string) *Creator {
	return NewCreator(project.NewResolver(client.Projects, defaultProject), client.Resource)
}

// Create writes req as "{folder}/{title}.canvas" into the resolved project
// and returns a Markdown summary. Errors from the collaborators are returned unchanged.
func (c *Creator) Create(ctx context.Context, req Request) (string, error) {
	if req.Title == "" {
		return "", ErrMissingTitle
	}

	active, err := c.projects.Resolve(ctx, req.Project)
	if err != nil {
		return "", err
	}

	path := canvas.Path(req.Folder, req.Title)

	doc := canvas.NewDocument(req.Nodes, req.Edges)
	if err := doc.Validate(); err != nil {
		return "", err
	}
	body, err := canvas.Encode(doc)
	if err != nil {
		return "", err
	}

	log.Info().Str("project", active.Name).Msgf("Creating canvas file: %s", path)
	res, err := c.resources.Put(ctx, active.URL, path, string(body))
	if err != nil {
		return "", err
	}
	log.Debug().Int("status", res.StatusCode).Bytes("response", res.Body).Msg("canvas written")

	action := "Updated"
	if res.StatusCode == http.StatusCreated {
		action = "Created"
	}
	return Summary(action, path), nil
}

// Summary is the tool result for a written canvas.
func Summary(action, path string) string {
	return fmt.Sprintf("# %s: %s\n\nThe canvas is ready to open in Obsidian.", action, path)
}
