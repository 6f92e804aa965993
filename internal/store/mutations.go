package store

import (
	"slices"

	"github.com/wagnerlima/designdata-mcp/internal/models"
)

// --- UI focus ---

// SetCurrentProject replaces the focused project. Passing nil clears focus.
func (s *Store) SetCurrentProject(p *models.Project) Result {
	return s.apply("set_current_project", false, func(st *State) Result {
		st.CurrentProject = cloneProjectPtr(p)
		return Applied
	})
}

// SetActiveSetting replaces the active view.
func (s *Store) SetActiveSetting(v models.ActiveView) Result {
	return s.apply("set_active_setting", false, func(st *State) Result {
		st.ActiveSetting = v
		return Applied
	})
}

// --- projects ---

// AddProject appends a caller-built project. A project whose id is already
// present is rejected.
func (s *Store) AddProject(p models.Project) Result {
	return s.apply("add_project", false, func(st *State) Result {
		if p.ID == "" {
			return SkippedInvalid
		}
		if slices.ContainsFunc(st.Projects, func(x models.Project) bool { return x.ID == p.ID }) {
			return SkippedDuplicate
		}
		st.Projects = append(slices.Clone(st.Projects), cloneProject(p))
		return Applied
	})
}

// DeleteProject removes a project and clears focus if it was focused. The
// project's wireframes stay in the global list, unassigned to any project.
func (s *Store) DeleteProject(id string) Result {
	return s.apply("delete_project", false, func(st *State) Result {
		projects, removed := without(st.Projects, func(p models.Project) bool { return p.ID == id })
		if !removed {
			return SkippedNotFound
		}
		st.Projects = projects
		if st.CurrentProject != nil && st.CurrentProject.ID == id {
			st.CurrentProject = nil
		}
		return Applied
	})
}

// AssignWireframe makes projectID the sole owner of wireframeID: the id is
// removed from every other project's list and the wireframe's ProjectID is set.
func (s *Store) AssignWireframe(projectID, wireframeID string) Result {
	return s.apply("assign_wireframe", true, func(st *State) Result {
		pi := slices.IndexFunc(st.Projects, func(p models.Project) bool { return p.ID == projectID })
		wi := slices.IndexFunc(st.Wireframes, func(w models.Wireframe) bool { return w.ID == wireframeID })
		if pi < 0 || wi < 0 {
			return SkippedNotFound
		}

		projects := make([]models.Project, len(st.Projects))
		for i, p := range st.Projects {
			p.WireframeIDs = removeString(p.WireframeIDs, wireframeID)
			if i == pi {
				p.WireframeIDs = append(p.WireframeIDs, wireframeID)
			}
			projects[i] = p
		}
		st.Projects = projects

		wireframes := slices.Clone(st.Wireframes)
		wireframes[wi].ProjectID = projectID
		st.Wireframes = wireframes

		refreshCurrentProject(st)
		return Applied
	})
}

// --- wireframes ---

// AddWireframe appends a wireframe. Duplicate ids are rejected.
func (s *Store) AddWireframe(w models.Wireframe) Result {
	return s.apply("add_wireframe", true, func(st *State) Result {
		if w.ID == "" {
			return SkippedInvalid
		}
		if slices.ContainsFunc(st.Wireframes, func(x models.Wireframe) bool { return x.ID == w.ID }) {
			return SkippedDuplicate
		}
		w = cloneWireframe(w)
		w.Elements = normalizeElements(w.Elements)
		st.Wireframes = append(slices.Clone(st.Wireframes), w)
		return Applied
	})
}

// DeleteWireframe removes a wireframe and drops its id from every project.
func (s *Store) DeleteWireframe(id string) Result {
	return s.apply("delete_wireframe", true, func(st *State) Result {
		wireframes, removed := without(st.Wireframes, func(w models.Wireframe) bool { return w.ID == id })
		referenced := slices.ContainsFunc(st.Projects, func(p models.Project) bool {
			return slices.Contains(p.WireframeIDs, id)
		})
		if !removed && !referenced {
			return SkippedNotFound
		}
		st.Wireframes = wireframes

		projects := make([]models.Project, len(st.Projects))
		for i, p := range st.Projects {
			p.WireframeIDs = removeString(p.WireframeIDs, id)
			projects[i] = p
		}
		st.Projects = projects
		refreshCurrentProject(st)
		return Applied
	})
}

// UpdateWireframe shallow-merges patch into the wireframe with the given id.
func (s *Store) UpdateWireframe(id string, patch models.WireframePatch) Result {
	return s.apply("update_wireframe", true, func(st *State) Result {
		return updateWireframe(st, id, func(w models.Wireframe) (models.Wireframe, Result) {
			w = patch.Apply(w)
			w.Elements = normalizeElements(cloneSlice(w.Elements, cloneElement))
			return w, Applied
		})
	})
}

// --- elements and links ---

// AddElement appends an element to a wireframe.
func (s *Store) AddElement(wireframeID string, e models.WireframeElement) Result {
	return s.apply("add_element", true, func(st *State) Result {
		if e.ID == "" {
			return SkippedInvalid
		}
		return updateWireframe(st, wireframeID, func(w models.Wireframe) (models.Wireframe, Result) {
			if slices.ContainsFunc(w.Elements, func(x models.WireframeElement) bool { return x.ID == e.ID }) {
				return w, SkippedDuplicate
			}
			e = cloneElement(e)
			e.Data.DataLinks = compact(e.Data.DataLinks, func(l models.DataLink) string { return l.ID })
			w.Elements = append(slices.Clone(w.Elements), e)
			return w, Applied
		})
	})
}

// MoveElement replaces an element's position.
func (s *Store) MoveElement(wireframeID, elementID string, pos models.Position) Result {
	return s.apply("move_element", true, func(st *State) Result {
		return updateElement(st, wireframeID, elementID, func(e models.WireframeElement) (models.WireframeElement, Result) {
			e.Position = pos
			return e, Applied
		})
	})
}

// AddDataLink embeds a link in the element whose id is link.SourceID.
func (s *Store) AddDataLink(wireframeID string, link models.DataLink) Result {
	return s.apply("add_data_link", true, func(st *State) Result {
		if link.ID == "" || link.SourceID == "" {
			return SkippedInvalid
		}
		return updateElement(st, wireframeID, link.SourceID, func(e models.WireframeElement) (models.WireframeElement, Result) {
			if slices.ContainsFunc(e.Data.DataLinks, func(l models.DataLink) bool { return l.ID == link.ID }) {
				return e, SkippedDuplicate
			}
			e.Data.DataLinks = append(slices.Clone(e.Data.DataLinks), link)
			return e, Applied
		})
	})
}

// DeleteElement removes an element from a wireframe together with every
// comment that targets it. Lineage entries referencing the element are kept.
func (s *Store) DeleteElement(wireframeID, elementID string) Result {
	return s.apply("delete_element", true, func(st *State) Result {
		comments, commentsRemoved := without(st.Comments, func(c models.Comment) bool { return c.ElementID == elementID })

		elementRemoved := false
		if wi := slices.IndexFunc(st.Wireframes, func(w models.Wireframe) bool { return w.ID == wireframeID }); wi >= 0 {
			elements, removed := without(st.Wireframes[wi].Elements, func(e models.WireframeElement) bool { return e.ID == elementID })
			if removed {
				wireframes := slices.Clone(st.Wireframes)
				wireframes[wi].Elements = elements
				st.Wireframes = wireframes
				elementRemoved = true
			}
		}

		if !elementRemoved && !commentsRemoved {
			return SkippedNotFound
		}
		st.Comments = comments
		return Applied
	})
}

// DeleteDataLink removes one link from an element's link list.
func (s *Store) DeleteDataLink(wireframeID, elementID, linkID string) Result {
	return s.apply("delete_data_link", true, func(st *State) Result {
		return updateElement(st, wireframeID, elementID, func(e models.WireframeElement) (models.WireframeElement, Result) {
			links, removed := without(e.Data.DataLinks, func(l models.DataLink) bool { return l.ID == linkID })
			if !removed {
				return e, SkippedNotFound
			}
			e.Data.DataLinks = links
			return e, Applied
		})
	})
}

// --- lineage ---

// AddDataLineage appends a lineage entry. Duplicate ids are rejected.
func (s *Store) AddDataLineage(l models.DataLineage) Result {
	return s.apply("add_data_lineage", true, func(st *State) Result {
		if l.ID == "" {
			return SkippedInvalid
		}
		if slices.ContainsFunc(st.DataLineage, func(x models.DataLineage) bool { return x.ID == l.ID }) {
			return SkippedDuplicate
		}
		st.DataLineage = append(slices.Clone(st.DataLineage), cloneLineage(l))
		return Applied
	})
}

// DeleteDataLineage removes a lineage entry.
func (s *Store) DeleteDataLineage(id string) Result {
	return s.apply("delete_data_lineage", true, func(st *State) Result {
		lineage, removed := without(st.DataLineage, func(l models.DataLineage) bool { return l.ID == id })
		if !removed {
			return SkippedNotFound
		}
		st.DataLineage = lineage
		return Applied
	})
}

// UpdateDataLineage shallow-merges patch into the lineage entry with the given id.
func (s *Store) UpdateDataLineage(id string, patch models.DataLineagePatch) Result {
	return s.apply("update_data_lineage", true, func(st *State) Result {
		i := slices.IndexFunc(st.DataLineage, func(l models.DataLineage) bool { return l.ID == id })
		if i < 0 {
			return SkippedNotFound
		}
		lineage := slices.Clone(st.DataLineage)
		lineage[i] = cloneLineage(patch.Apply(lineage[i]))
		st.DataLineage = lineage
		return Applied
	})
}

// AddSchemaField appends f to the schema of the lineage entry with the given
// id. A field name already in that schema is rejected.
func (s *Store) AddSchemaField(lineageID string, f models.SchemaField) Result {
	return s.apply("add_schema_field", true, func(st *State) Result {
		if f.Name == "" {
			return SkippedInvalid
		}
		i := slices.IndexFunc(st.DataLineage, func(l models.DataLineage) bool { return l.ID == lineageID })
		if i < 0 {
			return SkippedNotFound
		}
		if slices.ContainsFunc(st.DataLineage[i].Schema, func(x models.SchemaField) bool { return x.Name == f.Name }) {
			return SkippedDuplicate
		}
		lineage := slices.Clone(st.DataLineage)
		l := cloneLineage(lineage[i])
		l.Schema = append(l.Schema, cloneField(f))
		lineage[i] = l
		st.DataLineage = lineage
		return Applied
	})
}

// --- comments ---

// AddComment appends a comment. Duplicate ids are rejected.
func (s *Store) AddComment(c models.Comment) Result {
	return s.apply("add_comment", true, func(st *State) Result {
		if c.ID == "" {
			return SkippedInvalid
		}
		if slices.ContainsFunc(st.Comments, func(x models.Comment) bool { return x.ID == c.ID }) {
			return SkippedDuplicate
		}
		st.Comments = append(slices.Clone(st.Comments), cloneComment(c))
		return Applied
	})
}

// DeleteComment removes a comment. Mentions are not reconciled anywhere.
func (s *Store) DeleteComment(id string) Result {
	return s.apply("delete_comment", true, func(st *State) Result {
		comments, removed := without(st.Comments, func(c models.Comment) bool { return c.ID == id })
		if !removed {
			return SkippedNotFound
		}
		st.Comments = comments
		return Applied
	})
}

// --- settings ---

// SetFigmaToken replaces the design-tool access token. nil clears it.
func (s *Store) SetFigmaToken(token *string) Result {
	return s.apply("set_figma_token", true, func(st *State) Result {
		st.FigmaToken = cloneString(token)
		return Applied
	})
}

// SetOpenMetadataConfig replaces the catalog connection settings.
func (s *Store) SetOpenMetadataConfig(c *models.OpenMetadataConfig) Result {
	return s.apply("set_openmetadata_config", true, func(st *State) Result {
		st.OpenMetadataConfig = cloneOpenMetadata(c)
		return Applied
	})
}

// SetCurrentUser replaces the current user profile.
func (s *Store) SetCurrentUser(u *models.User) Result {
	return s.apply("set_current_user", true, func(st *State) Result {
		st.CurrentUser = cloneUser(u)
		return Applied
	})
}

// SetProfile replaces the profile fields of the current user. An existing
// user keeps its id; u.ID is used only when there is none yet.
func (s *Store) SetProfile(u models.User) Result {
	return s.apply("set_profile", true, func(st *State) Result {
		if st.CurrentUser != nil && st.CurrentUser.ID != "" {
			u.ID = st.CurrentUser.ID
		}
		if u.ID == "" {
			return SkippedInvalid
		}
		st.CurrentUser = cloneUser(&u)
		return Applied
	})
}

// ResetStore replaces the whole state with the initial configuration.
func (s *Store) ResetStore() Result {
	return s.apply("reset_store", true, func(st *State) Result {
		*st = InitialState()
		return Applied
	})
}

// --- helpers ---

func updateWireframe(st *State, id string, fn func(models.Wireframe) (models.Wireframe, Result)) Result {
	i := slices.IndexFunc(st.Wireframes, func(w models.Wireframe) bool { return w.ID == id })
	if i < 0 {
		return SkippedNotFound
	}
	w, res := fn(st.Wireframes[i])
	if res != Applied {
		return res
	}
	wireframes := slices.Clone(st.Wireframes)
	wireframes[i] = w
	st.Wireframes = wireframes
	return Applied
}

func updateElement(st *State, wireframeID, elementID string, fn func(models.WireframeElement) (models.WireframeElement, Result)) Result {
	return updateWireframe(st, wireframeID, func(w models.Wireframe) (models.Wireframe, Result) {
		i := slices.IndexFunc(w.Elements, func(e models.WireframeElement) bool { return e.ID == elementID })
		if i < 0 {
			return w, SkippedNotFound
		}
		e, res := fn(w.Elements[i])
		if res != Applied {
			return w, res
		}
		elements := slices.Clone(w.Elements)
		elements[i] = e
		w.Elements = elements
		return w, Applied
	})
}

// without returns a new slice lacking every item matching drop, and whether
// anything was dropped.
func without[T any](items []T, drop func(T) bool) ([]T, bool) {
	out := make([]T, 0, len(items))
	removed := false
	for _, it := range items {
		if drop(it) {
			removed = true
			continue
		}
		out = append(out, it)
	}
	return out, removed
}

func removeString(items []string, s string) []string {
	out, _ := without(items, func(x string) bool { return x == s })
	return out
}

// refreshCurrentProject keeps the focused project in step with its entry in
// the project list.
func refreshCurrentProject(st *State) {
	if st.CurrentProject == nil {
		return
	}
	for _, p := range st.Projects {
		if p.ID == st.CurrentProject.ID {
			c := cloneProject(p)
			st.CurrentProject = &c
			return
		}
	}
}
