// Package projection derives displayable node/edge graphs from store state.
// Every function here is pure: the same state yields the same graph, and
// absent optional fields are rendered as absent.
package projection

import "github.com/wagnerlima/designdata-mcp/internal/models"

// Node is one display node.
type Node struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Position models.Position `json:"position"`
	Data     NodeData        `json:"data"`
}

// NodeData is the payload rendered inside a node. Only the fields relevant to
// the node's type are set.
type NodeData struct {
	Label        string               `json:"label"`
	Description  string               `json:"description,omitempty"`
	ImageURL     string               `json:"imageUrl,omitempty"`
	Tags         []string             `json:"tags,omitempty"`
	Fields       []models.SchemaField `json:"fields,omitempty"`
	CommentCount int                  `json:"commentCount,omitempty"`
}

// Edge is one directed display edge.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// Graph is a projection result.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

func emptyGraph() Graph {
	return Graph{Nodes: []Node{}, Edges: []Edge{}}
}
