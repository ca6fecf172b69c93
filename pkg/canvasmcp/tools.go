package canvasmcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bttk/canvas-mcp/pkg/canvas"
	"github.com/bttk/canvas-mcp/pkg/project"
)

func property(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

func enum(description string, values ...string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description, "enum": values}
}

func nodeSchema() map[string]interface{} {
	props := map[string]interface{}{}
	props["id"] = property("string", "Unique identifier for the node")
	props["type"] = enum("Node type", string(canvas.NodeFile), string(canvas.NodeText), string(canvas.NodeLink), string(canvas.NodeGroup))
	props["x"] = property("integer", "X coordinate in pixels")
	props["y"] = property("integer", "Y coordinate in pixels")
	props["width"] = property("integer", "Width in pixels")
	props["height"] = property("integer", "Height in pixels")
	props["file"] = property("string", `Vault path for "file" nodes, e.g. "folder/Document Name.md"`)
	props["subpath"] = property("string", `Heading or block inside the file, starting with "#"`)
	props["text"] = property("string", `Markdown content for "text" nodes`)
	props["url"] = property("string", `URL for "link" nodes`)
	props["color"] = property("string", colorDescription)
	props["label"] = property("string", "Display label")
	props["background"] = property("string", "Background image path for groups")
	props["backgroundStyle"] = enum("Background rendering for groups",
		string(canvas.BackgroundCover), string(canvas.BackgroundRatio), string(canvas.BackgroundRepeat))

	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   []string{"id", "type", "x", "y", "width", "height"},
	}
}

func edgeSchema() map[string]interface{} {
	sides := []string{string(canvas.SideTop), string(canvas.SideRight), string(canvas.SideBottom), string(canvas.SideLeft)}
	ends := []string{string(canvas.EndNone), string(canvas.EndArrow)}

	props := map[string]interface{}{}
	props["id"] = property("string", "Unique identifier for the edge")
	props["fromNode"] = property("string", "ID of the source node")
	props["toNode"] = property("string", "ID of the target node")
	props["fromSide"] = enum("Side of the source node", sides...)
	props["toSide"] = enum("Side of the target node", sides...)
	props["fromEnd"] = enum("Endpoint shape at the source", ends...)
	props["toEnd"] = enum("Endpoint shape at the target", ends...)
	props["color"] = property("string", colorDescription)
	props["label"] = property("string", "Edge label text")

	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   []string{"id", "fromNode", "toNode"},
	}
}

const colorDescription = `Color: a preset "1"-"6" or a hex color such as "#ff8800"`

// CanvasTool returns the tool definition
func CanvasTool() mcp.Tool {
	return mcp.NewTool("canvas",
		mcp.WithDescription("Create an Obsidian canvas file to visualize concepts and connections. "+
			"Nodes and edges follow JSON Canvas 1.0; see the spec://canvas resource for the full format. "+
			"File nodes must reference the exact vault path as shown in Obsidian (e.g. \"folder/Document Name.md\")."),
		mcp.WithArray("nodes", mcp.Required(), mcp.Items(nodeSchema()),
			mcp.Description("Canvas nodes. Each has id, type (file, text, link, group), x, y, width and height.")),
		mcp.WithArray("edges", mcp.Required(), mcp.Items(edgeSchema()),
			mcp.Description("Canvas edges connecting fromNode to toNode.")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the canvas; saved as title.canvas")),
		mcp.WithString("folder", mcp.Required(),
			mcp.Description(`Folder relative to the project root, with "/" separators, e.g. "diagrams" or "projects/2025"`)),
		mcp.WithString("project", mcp.Description("Project to create the canvas in. Defaults to the active project.")),
	)
}

// CanvasHandler returns the tool handler
func CanvasHandler(creator *Creator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req Request
		if err := request.BindArguments(&req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid canvas arguments: %v", err)), nil
		}

		summary, err := creator.Create(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create canvas: %v", err)), nil
		}
		return mcp.NewToolResultText(summary), nil
	}
}

func RegisterCanvas(s *server.MCPServer, creator *Creator) {
	s.AddTool(CanvasTool(), CanvasHandler(creator))
}

// ListProjectsTool returns the tool definition
func ListProjectsTool() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDescription("List the projects a canvas can be created in"),
	)
}

// ListProjectsHandler returns the tool handler
func ListProjectsHandler(lister project.Lister) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := lister.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list projects: %v", err)), nil
		}

		return mcp.NewToolResultJSON(map[string]interface{}{
			"projects":        list.Projects,
			"default_project": list.DefaultProject,
		})
	}
}

func RegisterListProjects(s *server.MCPServer, lister project.Lister) {
	s.AddTool(ListProjectsTool(), ListProjectsHandler(lister))
}
