package projection

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagnerlima/designdata-mcp/internal/models"
	"github.com/wagnerlima/designdata-mcp/internal/store"
)

func el(id, label string, tags []string, links ...models.DataLink) models.WireframeElement {
	return models.WireframeElement{
		ID:       id,
		Type:     models.ElementComponent,
		Position: models.Position{X: 1, Y: 2},
		Data:     models.ElementData{Label: label, Description: label + " field", Tags: tags, DataLinks: links},
	}
}

// fixture: w1 has e1 -> e2 linked, e3 unlinked; w2 has e4 linked to e1.
func fixture(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	require.Equal(t, store.Applied, s.AddWireframe(models.Wireframe{
		ID: "w1", FigmaFileKey: "w1", Name: "Signup", ImageURL: "https://img/w1.png",
		Elements: []models.WireframeElement{
			el("e1", "Email", []string{"pii", "form"}, models.DataLink{ID: "l1", SourceID: "e1", TargetID: "e2", Type: "writes"}),
			el("e2", "Users table", []string{"db"}),
			el("e3", "Logo", nil),
		},
	}))
	require.Equal(t, store.Applied, s.AddWireframe(models.Wireframe{
		ID: "w2", FigmaFileKey: "w2", Name: "Profile",
		Elements: []models.WireframeElement{
			el("e4", "Avatar", []string{"form"}, models.DataLink{ID: "l2", SourceID: "e4", TargetID: "e1", Type: "default"}),
		},
	}))
	require.Equal(t, store.Applied, s.AddComment(models.Comment{ID: "c1", ElementID: "e1", Content: "?"}))
	require.Equal(t, store.Applied, s.AddComment(models.Comment{ID: "c2", ElementID: "e1", Content: "!"}))
	require.Equal(t, store.Applied, s.AddDataLineage(models.DataLineage{
		ID: "d1", Name: "signup flow", Source: "e1", Target: "e2",
		Schema: []models.SchemaField{{Name: "email", Type: models.FieldString}},
	}))
	require.Equal(t, store.Applied, s.AddDataLineage(models.DataLineage{ID: "d2", Name: "other", Source: "x", Target: "y"}))
	return s
}

func TestWireframeGraph(t *testing.T) {
	st := fixture(t).State()

	g := WireframeGraph(st, "w1")

	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "e1", g.Nodes[0].ID)
	assert.Equal(t, "component", g.Nodes[0].Type)
	assert.Equal(t, "Email", g.Nodes[0].Data.Label)
	assert.Equal(t, models.Position{X: 1, Y: 2}, g.Nodes[0].Position)
	assert.Equal(t, []Edge{{ID: "l1", Source: "e1", Target: "e2", Label: "writes"}}, g.Edges)
}

func TestWireframeGraph_UnknownWireframeIsEmpty(t *testing.T) {
	g := WireframeGraph(fixture(t).State(), "nope")
	assert.NotNil(t, g.Nodes)
	assert.NotNil(t, g.Edges)
	assert.Empty(t, g.Nodes)
}

func TestComponents(t *testing.T) {
	st := fixture(t).State()

	ids := func(cs []Component) []string {
		out := []string{}
		for _, c := range cs {
			out = append(out, c.Element.ID)
		}
		return out
	}

	assert.Equal(t, []string{"e1", "e4"}, ids(Components(st, Filter{})))
	assert.Equal(t, []string{"e1"}, ids(Components(st, Filter{Search: "EMAIL"})))
	assert.Equal(t, []string{"e4"}, ids(Components(st, Filter{Search: "avatar field"})))
	assert.Equal(t, []string{"e1", "e4"}, ids(Components(st, Filter{Tags: []string{"form"}})))
	assert.Equal(t, []string{"e1"}, ids(Components(st, Filter{Tags: []string{"form", "pii"}})))
	assert.Empty(t, Components(st, Filter{Tags: []string{"db"}}))

	cs := Components(st, Filter{Search: "avatar"})
	require.Len(t, cs, 1)
	assert.Equal(t, "w2", cs[0].WireframeID)
}

func TestFlowChain(t *testing.T) {
	st := fixture(t).State()

	g := FlowChain(st, FlowRequest{SourceID: "e1", TargetID: "e2", Name: "normalize", Description: "d", Tags: []string{"t"}})

	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "source-e1", g.Nodes[0].ID)
	assert.Equal(t, "Email", g.Nodes[0].Data.Label)
	assert.Equal(t, models.Position{X: 100, Y: 100}, g.Nodes[0].Position)
	assert.Equal(t, "transform-normalize", g.Nodes[1].ID)
	assert.Equal(t, models.Position{X: 350, Y: 100}, g.Nodes[1].Position)
	assert.Equal(t, "target-e2", g.Nodes[2].ID)
	assert.Equal(t, "Users table", g.Nodes[2].Data.Label)
	assert.Equal(t, models.Position{X: 600, Y: 100}, g.Nodes[2].Position)

	assert.Equal(t, []Edge{
		{ID: "edge-1-transform-normalize", Source: "source-e1", Target: "transform-normalize"},
		{ID: "edge-2-transform-normalize", Source: "transform-normalize", Target: "target-e2"},
	}, g.Edges)

	// Unknown elements still render, with an empty label.
	g = FlowChain(st, FlowRequest{SourceID: "gone", TargetID: "e2", Name: "n"})
	assert.Equal(t, "", g.Nodes[0].Data.Label)
}

func TestSchemaGraph(t *testing.T) {
	st := fixture(t).State()

	g := SchemaGraph(st, "w1")

	require.Len(t, g.Nodes, 4)
	assert.Equal(t, "wireframeComponent", g.Nodes[0].Type)
	assert.Equal(t, 2, g.Nodes[0].Data.CommentCount)
	assert.Equal(t, "https://img/w1.png", g.Nodes[0].Data.ImageURL)
	assert.Equal(t, models.Position{X: 100, Y: 350}, g.Nodes[1].Position)

	d1 := g.Nodes[3]
	assert.Equal(t, "d1", d1.ID)
	assert.Equal(t, "dataModel", d1.Type)
	assert.Equal(t, models.Position{X: 500, Y: 100}, d1.Position)
	assert.Len(t, d1.Data.Fields, 1)
	assert.Equal(t, []Edge{{ID: "e-d1", Source: "e1", Target: "d1"}}, g.Edges)
}

func TestSchemaGraph_LineageSurvivesElementDeletion(t *testing.T) {
	s := fixture(t)
	require.Equal(t, store.Applied, s.DeleteElement("w1", "e1"))

	g := SchemaGraph(s.State(), "w1")

	// d1 still targets e2, which is in w1; its source edge dangles.
	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "d1", g.Nodes[2].ID)
	assert.Equal(t, []Edge{{ID: "e-d1", Source: "e1", Target: "d1"}}, g.Edges)
}

func TestProjectors_Idempotent(t *testing.T) {
	st := fixture(t).State()

	for name, f := range map[string]func() Graph{
		"wireframe": func() Graph { return WireframeGraph(st, "w1") },
		"schema":    func() Graph { return SchemaGraph(st, "w1") },
		"flow":      func() Graph { return FlowChain(st, FlowRequest{SourceID: "e1", TargetID: "e2", Name: "x"}) },
	} {
		if diff := cmp.Diff(f(), f()); diff != "" {
			t.Errorf("%s projector not idempotent:\n%s", name, diff)
		}
	}
}

func TestExport(t *testing.T) {
	st := fixture(t).State()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.FixedZone("x", 3600))

	doc := Export(FlowChain(st, FlowRequest{SourceID: "e1", TargetID: "e2", Name: "n"}), st.DataLineage, now)

	assert.Equal(t, "1.0", doc.Metadata.Version)
	assert.Equal(t, "2024-06-01T09:00:00Z", doc.Metadata.ExportedAt)
	assert.Len(t, doc.Nodes, 3)
	assert.Len(t, doc.DataLineage, 2)
	assert.Equal(t, "data-lineage-export-2024-06-01T09:00:00Z.json", FileName(now))

	data, err := doc.Encode()
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.ElementsMatch(t, []string{"nodes", "edges", "dataLineage", "metadata"}, keys(raw))
}

func TestExport_EmptyGraphEncodesArrays(t *testing.T) {
	data, err := Export(Graph{}, nil, time.Unix(0, 0)).Encode()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, []any{}, raw["nodes"])
	assert.Equal(t, []any{}, raw["edges"])
	assert.Equal(t, []any{}, raw["dataLineage"])
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestCanvas_FollowsStoreAndSelection(t *testing.T) {
	s := fixture(t)
	c := NewCanvas(s, WireframeGraph)
	defer c.Close()

	assert.Empty(t, c.Graph().Nodes)

	g := c.Select("w1")
	assert.Len(t, g.Nodes, 3)
	assert.Equal(t, "w1", c.Selected())

	require.Equal(t, store.Applied, s.AddElement("w1", el("e5", "New", nil)))
	assert.Len(t, c.Graph().Nodes, 4)

	// Mutations on other wireframes re-derive to the same graph.
	require.Equal(t, store.Applied, s.DeleteWireframe("w2"))
	assert.Len(t, c.Graph().Nodes, 4)

	require.Equal(t, store.Applied, s.DeleteWireframe("w1"))
	assert.Empty(t, c.Graph().Nodes)

	c.Select("")
	assert.Equal(t, "", c.Selected())
}

func TestCanvas_CloseStopsUpdates(t *testing.T) {
	s := fixture(t)
	c := NewCanvas(s, WireframeGraph)
	c.Select("w1")
	c.Close()

	require.Equal(t, store.Applied, s.AddElement("w1", el("e5", "New", nil)))
	assert.Len(t, c.Graph().Nodes, 3)
}

// lateSource holds back the first notification until released, so a later
// mutation's notification reaches the canvas first.
type lateSource struct {
	*store.Store
	once    sync.Once
	held    chan struct{}
	release chan struct{}
}

func (l *lateSource) Subscribe(fn func(store.State)) func() {
	return l.Store.Subscribe(func(st store.State) {
		first := false
		l.once.Do(func() { first = true })
		if first {
			close(l.held)
			<-l.release
		}
		fn(st)
	})
}

func TestCanvas_OutOfOrderNotificationsKeepLatestGraph(t *testing.T) {
	src := &lateSource{Store: fixture(t), held: make(chan struct{}), release: make(chan struct{})}
	c := NewCanvas(src, WireframeGraph)
	defer c.Close()
	c.Select("w1")

	done := make(chan struct{})
	go func() {
		defer close(done)
		src.AddElement("w1", el("e5", "First", nil))
	}()

	<-src.held
	require.Equal(t, store.Applied, src.AddElement("w1", el("e6", "Second", nil)))
	close(src.release)
	<-done

	wf, ok := src.State().Wireframe("w1")
	require.True(t, ok)
	require.Len(t, wf.Elements, 5)
	assert.Len(t, c.Graph().Nodes, 5)
}
