package store

import (
	"time"

	"github.com/wagnerlima/designdata-mcp/internal/models"
)

// State is the complete in-memory model plus the UI focus fields.
type State struct {
	CurrentProject     *models.Project            `json:"currentProject"`
	Projects           []models.Project           `json:"projects"`
	Wireframes         []models.Wireframe         `json:"wireframes"`
	DataLineage        []models.DataLineage       `json:"dataLineage"`
	ActiveSetting      models.ActiveView          `json:"activeSetting"`
	FigmaToken         *string                    `json:"figmaToken"`
	OpenMetadataConfig *models.OpenMetadataConfig `json:"openMetadataConfig"`
	Comments           []models.Comment           `json:"comments"`
	CurrentUser        *models.User               `json:"currentUser"`
}

// Snapshot is the persisted subset of State. Projects, CurrentProject and
// ActiveSetting are deliberately absent: they reset on every process start.
type Snapshot struct {
	FigmaToken         *string                    `json:"figmaToken"`
	Wireframes         []models.Wireframe         `json:"wireframes"`
	DataLineage        []models.DataLineage       `json:"dataLineage"`
	OpenMetadataConfig *models.OpenMetadataConfig `json:"openMetadataConfig"`
	Comments           []models.Comment           `json:"comments"`
	CurrentUser        *models.User               `json:"currentUser"`
}

// InitialState returns the empty configuration used at startup and by ResetStore.
func InitialState() State {
	return State{
		Projects:      []models.Project{},
		Wireframes:    []models.Wireframe{},
		DataLineage:   []models.DataLineage{},
		ActiveSetting: models.ViewDashboard,
		Comments:      []models.Comment{},
	}
}

// Persisted extracts the persisted subset as a deep copy.
func (s State) Persisted() Snapshot {
	c := cloneState(s)
	return Snapshot{
		FigmaToken:         c.FigmaToken,
		Wireframes:         c.Wireframes,
		DataLineage:        c.DataLineage,
		OpenMetadataConfig: c.OpenMetadataConfig,
		Comments:           c.Comments,
		CurrentUser:        c.CurrentUser,
	}
}

// Rehydrate builds a fresh State from a persisted snapshot. Non-persisted
// fields take their initial values.
func Rehydrate(snap Snapshot) State {
	st := InitialState()
	st.FigmaToken = cloneString(snap.FigmaToken)
	st.Wireframes = normalizeWireframes(cloneWireframes(snap.Wireframes))
	st.DataLineage = compact(cloneLineages(snap.DataLineage), func(l models.DataLineage) string { return l.ID })
	st.OpenMetadataConfig = cloneOpenMetadata(snap.OpenMetadataConfig)
	st.Comments = compact(cloneComments(snap.Comments), func(c models.Comment) string { return c.ID })
	st.CurrentUser = cloneUser(snap.CurrentUser)
	return st
}

// Wireframe looks up a wireframe by id.
func (s State) Wireframe(id string) (models.Wireframe, bool) {
	for _, w := range s.Wireframes {
		if w.ID == id {
			return w, true
		}
	}
	return models.Wireframe{}, false
}

// Lineage looks up a lineage entry by id.
func (s State) Lineage(id string) (models.DataLineage, bool) {
	for _, l := range s.DataLineage {
		if l.ID == id {
			return l, true
		}
	}
	return models.DataLineage{}, false
}

// Element finds an element by id across all wireframes and returns it with
// the id of the wireframe that owns it.
func (s State) Element(id string) (models.WireframeElement, string, bool) {
	for _, w := range s.Wireframes {
		for _, e := range w.Elements {
			if e.ID == id {
				return e, w.ID, true
			}
		}
	}
	return models.WireframeElement{}, "", false
}

// CommentsFor returns the comments targeting an element, in insertion order.
func (s State) CommentsFor(elementID string) []models.Comment {
	out := []models.Comment{}
	for _, c := range s.Comments {
		if c.ElementID == elementID {
			out = append(out, c)
		}
	}
	return out
}

// compact drops entries without an id. Such entries are holes and never kept.
func compact[T any](items []T, id func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if id(it) != "" {
			out = append(out, it)
		}
	}
	return out
}

func normalizeWireframes(ws []models.Wireframe) []models.Wireframe {
	ws = compact(ws, func(w models.Wireframe) string { return w.ID })
	for i := range ws {
		ws[i].Elements = normalizeElements(ws[i].Elements)
	}
	return ws
}

func normalizeElements(es []models.WireframeElement) []models.WireframeElement {
	es = compact(es, func(e models.WireframeElement) string { return e.ID })
	for i := range es {
		es[i].Data.DataLinks = compact(es[i].Data.DataLinks, func(l models.DataLink) string { return l.ID })
	}
	return es
}

// --- deep copies ---

func cloneState(s State) State {
	return State{
		CurrentProject:     cloneProjectPtr(s.CurrentProject),
		Projects:           cloneProjects(s.Projects),
		Wireframes:         cloneWireframes(s.Wireframes),
		DataLineage:        cloneLineages(s.DataLineage),
		ActiveSetting:      s.ActiveSetting,
		FigmaToken:         cloneString(s.FigmaToken),
		OpenMetadataConfig: cloneOpenMetadata(s.OpenMetadataConfig),
		Comments:           cloneComments(s.Comments),
		CurrentUser:        cloneUser(s.CurrentUser),
	}
}

func cloneSlice[T any](in []T, f func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneProject(p models.Project) models.Project {
	p.WireframeIDs = cloneStrings(p.WireframeIDs)
	return p
}

func cloneProjects(in []models.Project) []models.Project {
	return cloneSlice(in, cloneProject)
}

func cloneProjectPtr(p *models.Project) *models.Project {
	if p == nil {
		return nil
	}
	c := cloneProject(*p)
	return &c
}

func cloneWireframe(w models.Wireframe) models.Wireframe {
	w.Elements = cloneSlice(w.Elements, cloneElement)
	return w
}

func cloneWireframes(in []models.Wireframe) []models.Wireframe {
	return cloneSlice(in, cloneWireframe)
}

func cloneElement(e models.WireframeElement) models.WireframeElement {
	if e.Size != nil {
		sz := *e.Size
		e.Size = &sz
	}
	e.Data.DataLinks = cloneSlice(e.Data.DataLinks, func(l models.DataLink) models.DataLink { return l })
	e.Data.Tags = cloneStrings(e.Data.Tags)
	e.Data.Annotations = cloneSlice(e.Data.Annotations, func(a models.Annotation) models.Annotation { return a })
	return e
}

func cloneLineage(l models.DataLineage) models.DataLineage {
	l.Schema = cloneSlice(l.Schema, cloneField)
	l.CreatedAt = cloneTime(l.CreatedAt)
	return l
}

func cloneLineages(in []models.DataLineage) []models.DataLineage {
	return cloneSlice(in, cloneLineage)
}

func cloneField(f models.SchemaField) models.SchemaField {
	if f.Constraints != nil {
		c := *f.Constraints
		if c.MinLength != nil {
			v := *c.MinLength
			c.MinLength = &v
		}
		if c.MaxLength != nil {
			v := *c.MaxLength
			c.MaxLength = &v
		}
		if c.Min != nil {
			v := *c.Min
			c.Min = &v
		}
		if c.Max != nil {
			v := *c.Max
			c.Max = &v
		}
		f.Constraints = &c
	}
	f.Relationships = cloneSlice(f.Relationships, func(r models.FieldRelationship) models.FieldRelationship { return r })
	return f
}

func cloneComment(c models.Comment) models.Comment {
	c.Mentions = cloneStrings(c.Mentions)
	c.Replies = cloneSlice(c.Replies, cloneComment)
	return c
}

func cloneComments(in []models.Comment) []models.Comment {
	return cloneSlice(in, cloneComment)
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func cloneOpenMetadata(c *models.OpenMetadataConfig) *models.OpenMetadataConfig {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
