package projection

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/wagnerlima/designdata-mcp/internal/models"
)

// ExportVersion tags every exported document.
const ExportVersion = "1.0"

// Document is the one-way export of a display graph plus the lineage list.
type Document struct {
	Nodes       []Node               `json:"nodes"`
	Edges       []Edge               `json:"edges"`
	DataLineage []models.DataLineage `json:"dataLineage"`
	Metadata    ExportMetadata       `json:"metadata"`
}

// ExportMetadata records when and in which format a document was exported.
type ExportMetadata struct {
	ExportedAt string `json:"exportedAt"`
	Version    string `json:"version"`
}

// Export assembles the export document.
func Export(g Graph, lineage []models.DataLineage, now time.Time) Document {
	if lineage == nil {
		lineage = []models.DataLineage{}
	}
	nodes, edges := g.Nodes, g.Edges
	if nodes == nil {
		nodes = []Node{}
	}
	if edges == nil {
		edges = []Edge{}
	}
	return Document{
		Nodes:       nodes,
		Edges:       edges,
		DataLineage: lineage,
		Metadata: ExportMetadata{
			ExportedAt: now.UTC().Format(time.RFC3339Nano),
			Version:    ExportVersion,
		},
	}
}

// FileName is the suggested download name for a document exported at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("data-lineage-export-%s.json", t.UTC().Format(time.RFC3339))
}

// Encode renders d as indented JSON.
func (d Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}
