package projection

import (
	"slices"
	"strings"

	"github.com/wagnerlima/designdata-mcp/internal/models"
	"github.com/wagnerlima/designdata-mcp/internal/store"
)

// Filter narrows the selectable component list of the data-lineage view.
type Filter struct {
	// Search matches label or description, case-insensitively. Empty matches all.
	Search string
	// Tags must all be present on a component. Empty matches all.
	Tags []string
}

// Component is an element that can take part in a data flow.
type Component struct {
	WireframeID string                  `json:"wireframeId"`
	Element     models.WireframeElement `json:"element"`
}

// Components returns, across all wireframes, every element with at least one
// data link that matches f.
func Components(st store.State, f Filter) []Component {
	search := strings.ToLower(f.Search)
	out := []Component{}
	for _, w := range st.Wireframes {
		for _, e := range w.Elements {
			if len(e.Data.DataLinks) == 0 {
				continue
			}
			if !matchesSearch(e, search) || !hasAllTags(e, f.Tags) {
				continue
			}
			out = append(out, Component{WireframeID: w.ID, Element: e})
		}
	}
	return out
}

func matchesSearch(e models.WireframeElement, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Data.Label), search) ||
		strings.Contains(strings.ToLower(e.Data.Description), search)
}

func hasAllTags(e models.WireframeElement, tags []string) bool {
	for _, t := range tags {
		if !slices.Contains(e.Data.Tags, t) {
			return false
		}
	}
	return true
}

// FlowRequest describes a data flow to be drawn between two components.
type FlowRequest struct {
	SourceID    string
	TargetID    string
	Name        string
	Description string
	Tags        []string
}

// Chain node positions. The chain is a fixed template, not a layout.
const (
	chainY       = 100
	chainSourceX = 100
	chainMidX    = 350
	chainTargetX = 600
)

// FlowChain synthesizes the three-node chain source → transform → target.
// Labels are resolved from st; unknown elements render with an empty label.
func FlowChain(st store.State, req FlowRequest) Graph {
	label := func(id string) string {
		e, _, _ := st.Element(id)
		return e.Data.Label
	}

	source := Node{
		ID:       "source-" + req.SourceID,
		Type:     "source",
		Position: models.Position{X: chainSourceX, Y: chainY},
		Data:     NodeData{Label: label(req.SourceID), Description: req.Description, Tags: req.Tags},
	}
	transform := Node{
		ID:       "transform-" + req.Name,
		Type:     "transform",
		Position: models.Position{X: chainMidX, Y: chainY},
		Data:     NodeData{Label: req.Name, Description: req.Description, Tags: req.Tags, Fields: []models.SchemaField{}},
	}
	target := Node{
		ID:       "target-" + req.TargetID,
		Type:     "target",
		Position: models.Position{X: chainTargetX, Y: chainY},
		Data:     NodeData{Label: label(req.TargetID), Description: req.Description, Tags: req.Tags},
	}

	return Graph{
		Nodes: []Node{source, transform, target},
		Edges: []Edge{
			{ID: "edge-1-" + transform.ID, Source: source.ID, Target: transform.ID},
			{ID: "edge-2-" + transform.ID, Source: transform.ID, Target: target.ID},
		},
	}
}
