package models

import "time"

// WireframePatch is a shallow update: every non-nil field replaces the
// corresponding wireframe field wholesale. Nested values are never merged.
type WireframePatch struct {
	FigmaFileKey *string
	ProjectID    *string
	Name         *string
	URL          *string
	ImageURL     *string
	Elements     *[]WireframeElement
	UpdatedAt    *time.Time
}

// Apply returns w with the patch applied.
func (p WireframePatch) Apply(w Wireframe) Wireframe {
	if p.FigmaFileKey != nil {
		w.FigmaFileKey = *p.FigmaFileKey
	}
	if p.ProjectID != nil {
		w.ProjectID = *p.ProjectID
	}
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.URL != nil {
		w.URL = *p.URL
	}
	if p.ImageURL != nil {
		w.ImageURL = *p.ImageURL
	}
	if p.Elements != nil {
		w.Elements = *p.Elements
	}
	if p.UpdatedAt != nil {
		w.UpdatedAt = *p.UpdatedAt
	}
	return w
}

// DataLineagePatch is the shallow update for a lineage entry.
type DataLineagePatch struct {
	Name      *string
	Source    *string
	Target    *string
	Schema    *[]SchemaField
	CreatedBy *string
}

// Apply returns l with the patch applied.
func (p DataLineagePatch) Apply(l DataLineage) DataLineage {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Source != nil {
		l.Source = *p.Source
	}
	if p.Target != nil {
		l.Target = *p.Target
	}
	if p.Schema != nil {
		l.Schema = *p.Schema
	}
	if p.CreatedBy != nil {
		l.CreatedBy = *p.CreatedBy
	}
	return l
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
