// Package canvas models JSON Canvas 1.0 documents, the file format of
// Obsidian's ".canvas" files.
package canvas

// NodeType is the kind of a canvas node.
type NodeType string

const (
	NodeFile  NodeType = "file"
	NodeText  NodeType = "text"
	NodeLink  NodeType = "link"
	NodeGroup NodeType = "group"
)

// Side is the side of a node an edge attaches to.
type Side string

const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// End is the shape drawn at an edge endpoint.
type End string

const (
	EndNone  End = "none"
	EndArrow End = "arrow"
)

// BackgroundStyle is how a group renders its background image.
type BackgroundStyle string

const (
	BackgroundCover  BackgroundStyle = "cover"
	BackgroundRatio  BackgroundStyle = "ratio"
	BackgroundRepeat BackgroundStyle = "repeat"
)

// Node is a positioned element on the canvas. Geometry is in pixels.
//
// Which optional fields apply depends on Type: File and Subpath for file
// nodes, Text for text nodes, URL for link nodes, Label, Background and
// BackgroundStyle for groups. Empty optional fields are left out of the file.
type Node struct {
	ID     string   `json:"id"`
	Type   NodeType `json:"type"`
	X      int      `json:"x"`
	Y      int      `json:"y"`
	Width  int      `json:"width"`
	Height int      `json:"height"`

	File            string          `json:"file,omitempty"`
	Subpath         string          `json:"subpath,omitempty"`
	Text            string          `json:"text,omitempty"`
	URL             string          `json:"url,omitempty"`
	Color           string          `json:"color,omitempty"`
	Label           string          `json:"label,omitempty"`
	Background      string          `json:"background,omitempty"`
	BackgroundStyle BackgroundStyle `json:"backgroundStyle,omitempty"`
}

// Edge is a directed connection between two nodes.
type Edge struct {
	ID       string `json:"id"`
	FromNode string `json:"fromNode"`
	ToNode   string `json:"toNode"`
	FromSide Side   `json:"fromSide,omitempty"`
	ToSide   Side   `json:"toSide,omitempty"`
	FromEnd  End    `json:"fromEnd,omitempty"`
	ToEnd    End    `json:"toEnd,omitempty"`
	Color    string `json:"color,omitempty"`
	Label    string `json:"label,omitempty"`
}

// Document is the on-disk JSON Canvas document.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NewDocument returns a document holding nodes and edges in the given order.
// Nil slices become empty so both keys are always written as arrays.
func NewDocument(nodes []Node, edges []Edge) Document {
	if nodes == nil {
		nodes = []Node{}
	}
	if edges == nil {
		edges = []Edge{}
	}
	return Document{Nodes: nodes, Edges: edges}
}

func newNode(t NodeType, id string, x, y, width, height int) Node {
	return Node{ID: id, Type: t, X: x, Y: y, Width: width, Height: height}
}

// NewFileNode returns a node that embeds the vault file at path.
func NewFileNode(id, path string, x, y, width, height int) Node {
	n := newNode(NodeFile, id, x, y, width, height)
	n.File = path
	return n
}

// NewTextNode returns a node holding Markdown text.
func NewTextNode(id, text string, x, y, width, height int) Node {
	n := newNode(NodeText, id, x, y, width, height)
	n.Text = text
	return n
}

// NewLinkNode returns a node that embeds a web page.
func NewLinkNode(id, url string, x, y, width, height int) Node {
	n := newNode(NodeLink, id, x, y, width, height)
	n.URL = url
	return n
}

// NewGroupNode returns a group container.
func NewGroupNode(id string, x, y, width, height int) Node {
	return newNode(NodeGroup, id, x, y, width, height)
}

// WithColor returns a copy of n with color set to a preset ("1".."6") or hex color.
func (n Node) WithColor(color string) Node {
	n.Color = color
	return n
}

// WithLabel returns a copy of n with label set.
func (n Node) WithLabel(label string) Node {
	n.Label = label
	return n
}

// NewEdge returns an edge from one node id to another.
func NewEdge(id, fromNode, toNode string) Edge {
	return Edge{ID: id, FromNode: fromNode, ToNode: toNode}
}

// WithSides returns a copy of e attached to the given sides.
func (e Edge) WithSides(from, to Side) Edge {
	e.FromSide = from
	e.ToSide = to
	return e
}

// WithColor returns a copy of e with color set.
func (e Edge) WithColor(color string) Edge {
	e.Color = color
	return e
}

// WithLabel returns a copy of e with label set.
func (e Edge) WithLabel(label string) Edge {
	e.Label = label
	return e
}
