package session

import (
	"sync"

	"github.com/wagnerlima/designdata-mcp/internal/projection"
)

// Session holds the transient view focus of one MCP connection: which
// wireframe each canvas shows and how the component list is filtered.
// None of it is persisted.
type Session struct {
	mu        sync.Mutex
	wireframe *projection.Canvas
	schema    *projection.Canvas
	filter    projection.Filter
	lineageID string
	flow      projection.Graph
}

// New creates a session whose canvases follow src.
func New(src projection.Source) *Session {
	return &Session{
		wireframe: projection.NewCanvas(src, projection.WireframeGraph),
		schema:    projection.NewCanvas(src, projection.SchemaGraph),
	}
}

// SelectWireframe points the wireframe canvas at id and returns its graph.
func (s *Session) SelectWireframe(id string) projection.Graph {
	return s.wireframe.Select(id)
}

// WireframeCanvas returns the wireframe canvas.
func (s *Session) WireframeCanvas() *projection.Canvas {
	return s.wireframe
}

// SelectSchemaWireframe points the schema canvas at id and returns its graph.
func (s *Session) SelectSchemaWireframe(id string) projection.Graph {
	return s.schema.Select(id)
}

// SchemaCanvas returns the schema canvas.
func (s *Session) SchemaCanvas() *projection.Canvas {
	return s.schema
}

// SetFilter replaces the component filter.
func (s *Session) SetFilter(f projection.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// Filter returns the component filter.
func (s *Session) Filter() projection.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SelectLineage remembers the lineage entry being edited.
func (s *Session) SelectLineage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lineageID = id
}

// Lineage returns the selected lineage id, or "" if none.
func (s *Session) Lineage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lineageID
}

// SetFlow remembers the data-flow chain last drawn in the lineage view.
func (s *Session) SetFlow(g projection.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flow = g
}

// Flow returns the data-flow chain last drawn, or a zero Graph.
func (s *Session) Flow() projection.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow
}

// Clear resets the focus without detaching the canvases.
func (s *Session) Clear() {
	s.wireframe.Select("")
	s.schema.Select("")
	s.mu.Lock()
	s.filter = projection.Filter{}
	s.lineageID = ""
	s.flow = projection.Graph{}
	s.mu.Unlock()
}

// Close detaches the canvases from the store.
func (s *Session) Close() {
	s.wireframe.Close()
	s.schema.Close()
}
