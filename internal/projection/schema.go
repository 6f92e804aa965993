package projection

import (
	"github.com/wagnerlima/designdata-mcp/internal/models"
	"github.com/wagnerlima/designdata-mcp/internal/store"
)

const (
	schemaElementX       = 100
	schemaLineageX       = 500
	schemaTop            = 100
	schemaElementSpacing = 250
	schemaLineageSpacing = 150
)

// SchemaGraph emits one node per element of the wireframe plus one node per
// lineage entry whose source or target is the wireframe or one of its
// elements. Each lineage node gets an edge from its source.
func SchemaGraph(st store.State, wireframeID string) Graph {
	g := emptyGraph()
	w, ok := st.Wireframe(wireframeID)
	if !ok {
		return g
	}

	refs := map[string]bool{w.ID: true}
	for i, e := range w.Elements {
		refs[e.ID] = true
		g.Nodes = append(g.Nodes, Node{
			ID:       e.ID,
			Type:     "wireframeComponent",
			Position: models.Position{X: schemaElementX, Y: float64(schemaTop + i*schemaElementSpacing)},
			Data: NodeData{
				Label:        e.Data.Label,
				Description:  e.Data.Description,
				ImageURL:     w.ImageURL,
				CommentCount: len(st.CommentsFor(e.ID)),
			},
		})
	}

	i := 0
	for _, l := range st.DataLineage {
		if !refs[l.Source] && !refs[l.Target] {
			continue
		}
		g.Nodes = append(g.Nodes, Node{
			ID:       l.ID,
			Type:     "dataModel",
			Position: models.Position{X: schemaLineageX, Y: float64(schemaTop + i*schemaLineageSpacing)},
			Data:     NodeData{Label: l.Name, Fields: l.Schema},
		})
		g.Edges = append(g.Edges, Edge{
			ID:     "e-" + l.ID,
			Source: l.Source,
			Target: l.ID,
		})
		i++
	}
	return g
}
