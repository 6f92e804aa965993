package projection

import (
	"sync"

	"github.com/wagnerlima/designdata-mcp/internal/store"
)

// Source is the part of the store a Canvas needs.
type Source interface {
	State() store.State
	Subscribe(func(store.State)) (cancel func())
}

// Project derives a graph for the selected id from a state.
type Project func(st store.State, selected string) Graph

// Canvas keeps a derived graph in step with the store: it re-derives when the
// selection changes and after every applied store mutation.
type Canvas struct {
	project Project

	mu       sync.RWMutex
	selected string
	graph    Graph

	src    Source
	cancel func()
}

// NewCanvas creates a canvas with nothing selected and subscribes it to src.
func NewCanvas(src Source, project Project) *Canvas {
	c := &Canvas{project: project, src: src, graph: emptyGraph()}
	c.cancel = src.Subscribe(c.refresh)
	return c
}

// Select changes the selection and re-derives immediately. An empty id
// clears the selection.
func (c *Canvas) Select(id string) Graph {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = id
	c.graph = c.derive(c.src.State())
	return c.graph
}

// Selected returns the selected id.
func (c *Canvas) Selected() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected
}

// Graph returns the latest derived graph.
func (c *Canvas) Graph() Graph {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.graph
}

// Close unsubscribes the canvas from the store.
func (c *Canvas) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// refresh re-reads the source instead of using the notified state, which may
// be older than the store when notifications arrive out of order.
func (c *Canvas) refresh(store.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.graph = c.derive(c.src.State())
}

func (c *Canvas) derive(st store.State) Graph {
	if c.selected == "" {
		return emptyGraph()
	}
	return c.project(st, c.selected)
}
