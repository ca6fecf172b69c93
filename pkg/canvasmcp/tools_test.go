package canvasmcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bttk/canvas-mcp/pkg/canvas"
	"github.com/bttk/canvas-mcp/pkg/memory"
)

func setupClient(t *testing.T) (*memory.Client, *fakeAPI) {
	ts, api := newFakeAPI(t)
	client, err := memory.NewClient(ts.URL, "test-token")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client, api
}

func callTool(t *testing.T, tool server.ServerTool, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	srv, err := mcptest.NewServer(t, tool)
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	res, err := srv.Client().CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      tool.Tool.Name,
			Arguments: args,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("Expected content, got empty")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestCanvasTool(t *testing.T) {
	client, api := setupClient(t)
	tool := server.ServerTool{Tool: CanvasTool(), Handler: CanvasHandler(NewClientCreator(client, ""))}

	res := callTool(t, tool, map[string]interface{}{
		"nodes": []interface{}{
			map[string]interface{}{"id": "n1", "type": "text", "text": "Hello", "x": 0, "y": 0, "width": 250, "height": 60},
			map[string]interface{}{"id": "n2", "type": "file", "file": "notes/Topic.md", "x": 300, "y": 0, "width": 400, "height": 300, "color": "2"},
		},
		"edges": []interface{}{
			map[string]interface{}{"id": "e1", "fromNode": "n1", "toNode": "n2", "fromSide": "right", "toSide": "left", "label": "about"},
		},
		"title":  "Topic Map",
		"folder": "diagrams",
	})
	if res.IsError {
		t.Fatalf("Tool returned error: %s", resultText(t, res))
	}

	want := "# Created: diagrams/Topic Map.canvas\n\nThe canvas is ready to open in Obsidian."
	if got := resultText(t, res); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	content, ok := api.file("main:diagrams/Topic Map.canvas")
	if !ok {
		t.Fatal("Expected canvas to be written")
	}
	doc, err := canvas.Decode([]byte(content))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 2 || doc.Nodes[0].ID != "n1" || doc.Nodes[1].File != "notes/Topic.md" {
		t.Errorf("Unexpected nodes: %+v", doc.Nodes)
	}
	if len(doc.Edges) != 1 || doc.Edges[0].FromSide != canvas.SideRight {
		t.Errorf("Unexpected edges: %+v", doc.Edges)
	}
}

func TestCanvasTool_UnknownProject(t *testing.T) {
	client, api := setupClient(t)
	tool := server.ServerTool{Tool: CanvasTool(), Handler: CanvasHandler(NewClientCreator(client, ""))}

	res := callTool(t, tool, map[string]interface{}{
		"nodes":   []interface{}{},
		"edges":   []interface{}{},
		"title":   "Map",
		"folder":  "diagrams",
		"project": "missing-project",
	})
	if !res.IsError {
		t.Fatal("Expected tool error")
	}
	if text := resultText(t, res); !strings.Contains(text, "project not found") {
		t.Errorf("Expected project not found error, got %q", text)
	}
	if api.putCount() != 0 {
		t.Errorf("Expected no writes, got %d", api.putCount())
	}
}

func TestCanvasTool_InvalidArguments(t *testing.T) {
	client, _ := setupClient(t)
	tool := server.ServerTool{Tool: CanvasTool(), Handler: CanvasHandler(NewClientCreator(client, ""))}

	res := callTool(t, tool, map[string]interface{}{
		"nodes":  []interface{}{map[string]interface{}{"id": "n1", "type": "text", "text": "x", "x": 1.5}},
		"edges":  []interface{}{},
		"title":  "Map",
		"folder": "diagrams",
	})
	if !res.IsError {
		t.Fatal("Expected tool error for fractional coordinate")
	}
}

func TestCanvasTool_Definition(t *testing.T) {
	tool := CanvasTool()
	if tool.Name != "canvas" {
		t.Errorf("Expected tool name canvas, got %s", tool.Name)
	}
	required := strings.Join(tool.InputSchema.Required, ",")
	for _, name := range []string{"nodes", "edges", "title", "folder"} {
		if !strings.Contains(required, name) {
			t.Errorf("Expected %s to be required, got %s", name, required)
		}
	}
	if strings.Contains(required, "project") {
		t.Error("Expected project to be optional")
	}
}

func TestListProjectsTool(t *testing.T) {
	client, _ := setupClient(t)
	tool := server.ServerTool{Tool: ListProjectsTool(), Handler: ListProjectsHandler(client.Projects)}

	res := callTool(t, tool, nil)
	if res.IsError {
		t.Fatalf("Tool returned error: %s", resultText(t, res))
	}

	var out struct {
		Projects       []memory.Project `json:"projects"`
		DefaultProject string           `json:"default_project"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Projects) != 2 || out.DefaultProject != "main" {
		t.Errorf("Unexpected projects: %+v", out)
	}
}

func TestCanvasSpecHandler(t *testing.T) {
	contents, err := CanvasSpecHandler(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("Expected one resource, got %d", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("Expected text resource, got %T", contents[0])
	}
	if text.URI != CanvasSpecURI || !strings.Contains(text.Text, "JSON Canvas 1.0") {
		t.Errorf("Unexpected resource: %s", text.URI)
	}
}
