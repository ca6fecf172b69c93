package canvasmcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CanvasSpecURI is the URI of the JSON Canvas format reference.
const CanvasSpecURI = "spec://canvas"

// CanvasSpec is the JSON Canvas 1.0 reference served to clients before they build a canvas.
const CanvasSpec = `# JSON Canvas 1.0

A canvas file is a JSON object with two arrays: ` + "`nodes`" + ` and ` + "`edges`" + `.
Nodes are listed in ascending z-index: the first node is drawn below the rest.

## Nodes

Every node has:

- ` + "`id`" + ` (string, required): unique among all nodes and edges
- ` + "`type`" + ` (string, required): ` + "`text`, `file`, `link` or `group`" + `
- ` + "`x`, `y`" + ` (integer, required): position in pixels
- ` + "`width`, `height`" + ` (integer, required): size in pixels
- ` + "`color`" + ` (string, optional): see Colors

Type specific fields:

- text: ` + "`text`" + ` (required) plain text with Markdown syntax
- file: ` + "`file`" + ` (required) path to a file in the vault, e.g. ` + "`folder/Document Name.md`" + `;
  ` + "`subpath`" + ` (optional) links to a heading or block, starting with ` + "`#`" + `
- link: ` + "`url`" + ` (required)
- group: ` + "`label`" + ` (optional); ` + "`background`" + ` (optional) image path;
  ` + "`backgroundStyle`" + ` (optional) ` + "`cover`, `ratio` or `repeat`" + `

## Edges

- ` + "`id`" + ` (string, required)
- ` + "`fromNode`, `toNode`" + ` (string, required): node ids
- ` + "`fromSide`, `toSide`" + ` (optional): ` + "`top`, `right`, `bottom` or `left`" + `
- ` + "`fromEnd`" + ` (optional, default ` + "`none`" + `), ` + "`toEnd`" + ` (optional, default ` + "`arrow`" + `): ` + "`none` or `arrow`" + `
- ` + "`color`" + ` (optional), ` + "`label`" + ` (optional)

## Colors

Either a hex string such as ` + "`#FF0000`" + ` or a preset:
` + "`1`" + ` red, ` + "`2`" + ` orange, ` + "`3`" + ` yellow, ` + "`4`" + ` green, ` + "`5`" + ` cyan, ` + "`6`" + ` purple.

## Example

` + "```json" + `
{
  "nodes": [
    {"id": "node1", "type": "file", "file": "folder/Document.md", "x": 0, "y": 0, "width": 400, "height": 300, "color": "1"},
    {"id": "node2", "type": "text", "text": "# Idea", "x": 500, "y": 0, "width": 250, "height": 120}
  ],
  "edges": [
    {"id": "edge1", "fromNode": "node1", "toNode": "node2", "fromSide": "right", "toSide": "left", "label": "connects to"}
  ]
}
` + "```" + `
`

// CanvasSpecResource returns the resource definition
func CanvasSpecResource() mcp.Resource {
	return mcp.NewResource(CanvasSpecURI, "JSON Canvas 1.0 specification",
		mcp.WithResourceDescription("Format of the nodes and edges accepted by the canvas tool."),
		mcp.WithMIMEType("text/markdown"),
	)
}

// CanvasSpecHandler returns the resource content
func CanvasSpecHandler(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CanvasSpecURI,
			MIMEType: "text/markdown",
			Text:     CanvasSpec,
		},
	}, nil
}

func RegisterCanvasSpec(s *server.MCPServer) {
	s.AddResource(CanvasSpecResource(), CanvasSpecHandler)
}
