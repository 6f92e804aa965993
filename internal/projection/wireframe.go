package projection

import (
	"github.com/wagnerlima/designdata-mcp/internal/store"
)

// WireframeGraph maps each element of the wireframe to a node and each
// embedded data link to an edge. An unknown wireframe yields an empty graph.
func WireframeGraph(st store.State, wireframeID string) Graph {
	g := emptyGraph()
	w, ok := st.Wireframe(wireframeID)
	if !ok {
		return g
	}

	for _, e := range w.Elements {
		g.Nodes = append(g.Nodes, Node{
			ID:       e.ID,
			Type:     string(e.Type),
			Position: e.Position,
			Data: NodeData{
				Label:       e.Data.Label,
				Description: e.Data.Description,
				Tags:        e.Data.Tags,
			},
		})
		for _, l := range e.Data.DataLinks {
			g.Edges = append(g.Edges, Edge{
				ID:     l.ID,
				Source: l.SourceID,
				Target: l.TargetID,
				Label:  l.Type,
			})
		}
	}
	return g
}
