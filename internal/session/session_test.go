package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagnerlima/designdata-mcp/internal/models"
	"github.com/wagnerlima/designdata-mcp/internal/projection"
	"github.com/wagnerlima/designdata-mcp/internal/store"
)

func TestSession_FocusAndClear(t *testing.T) {
	s := store.New()
	require.Equal(t, store.Applied, s.AddWireframe(models.Wireframe{
		ID: "w1",
		Elements: []models.WireframeElement{
			{ID: "e1", Type: models.ElementButton, Data: models.ElementData{Label: "Save"}},
		},
	}))

	sess := New(s)
	defer sess.Close()

	assert.Len(t, sess.SelectWireframe("w1").Nodes, 1)
	assert.Len(t, sess.SelectSchemaWireframe("w1").Nodes, 1)

	sess.SetFilter(projection.Filter{Search: "save", Tags: []string{"ui"}})
	sess.SelectLineage("d1")
	sess.SetFlow(projection.Graph{Nodes: []projection.Node{{ID: "source-e1"}}})

	assert.Equal(t, "save", sess.Filter().Search)
	assert.Equal(t, "d1", sess.Lineage())
	assert.Len(t, sess.Flow().Nodes, 1)

	require.Equal(t, store.Applied, s.DeleteElement("w1", "e1"))
	assert.Empty(t, sess.WireframeCanvas().Graph().Nodes)

	sess.Clear()
	assert.Equal(t, "", sess.WireframeCanvas().Selected())
	assert.Equal(t, "", sess.SchemaCanvas().Selected())
	assert.Equal(t, projection.Filter{}, sess.Filter())
	assert.Equal(t, "", sess.Lineage())
	assert.Empty(t, sess.Flow().Nodes)
}
