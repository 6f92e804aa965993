package tools

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/designdata-mcp/internal/models"
	"github.com/wagnerlima/designdata-mcp/internal/store"
)

// ProjectTools holds references needed by project management tool handlers.
type ProjectTools struct {
	Store *store.Store
	Now   Clock
}

// --- Input types ---

type CreateProjectInput struct {
	Name        string `json:"name" jsonschema:"Project name" validate:"required"`
	Description string `json:"description,omitempty" jsonschema:"Optional project description"`
}

type SelectProjectInput struct {
	ID string `json:"id,omitempty" jsonschema:"ID of the project to focus; empty clears the focus"`
}

type DeleteProjectInput struct {
	ID string `json:"id" jsonschema:"ID of the project to delete" validate:"required"`
}

type AssignWireframeInput struct {
	ProjectID   string `json:"project_id" jsonschema:"ID of the project" validate:"required"`
	WireframeID string `json:"wireframe_id" jsonschema:"ID of the wireframe to move into the project" validate:"required"`
}

// --- Handlers ---

func (t *ProjectTools) ListProjects(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.Store.State().Projects)
}

func (t *ProjectTools) CreateProject(_ context.Context, _ *mcp.CallToolRequest, input CreateProjectInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	now := t.Now.now()
	proj := models.Project{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Description:  input.Description,
		WireframeIDs: []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if res := t.Store.AddProject(proj); !res.OK() {
		return skipped(res, "project"), nil, nil
	}

	// Auto-focus the new project
	t.Store.SetCurrentProject(&proj)

	return toolJSON(proj)
}

func (t *ProjectTools) SelectProject(_ context.Context, _ *mcp.CallToolRequest, input SelectProjectInput) (*mcp.CallToolResult, any, error) {
	if input.ID == "" {
		t.Store.SetCurrentProject(nil)
		return toolText("Project focus cleared."), nil, nil
	}

	for _, p := range t.Store.State().Projects {
		if p.ID == input.ID {
			t.Store.SetCurrentProject(&p)
			return toolJSON(p)
		}
	}
	return skipped(store.SkippedNotFound, fmt.Sprintf("project %q", input.ID)), nil, nil
}

func (t *ProjectTools) GetCurrentProject(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	cur := t.Store.State().CurrentProject
	if cur == nil {
		return toolText("No project is currently focused. Use select_project to pick one."), nil, nil
	}
	return toolJSON(cur)
}

func (t *ProjectTools) DeleteProject(_ context.Context, _ *mcp.CallToolRequest, input DeleteProjectInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	if res := t.Store.DeleteProject(input.ID); !res.OK() {
		return skipped(res, fmt.Sprintf("project %q", input.ID)), nil, nil
	}
	return toolText(fmt.Sprintf("Project %q deleted.", input.ID)), nil, nil
}

func (t *ProjectTools) AssignWireframe(_ context.Context, _ *mcp.CallToolRequest, input AssignWireframeInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	if res := t.Store.AssignWireframe(input.ProjectID, input.WireframeID); !res.OK() {
		return skipped(res, fmt.Sprintf("project %q or wireframe %q", input.ProjectID, input.WireframeID)), nil, nil
	}

	for _, p := range t.Store.State().Projects {
		if p.ID == input.ProjectID {
			return toolJSON(p)
		}
	}
	return toolText("Wireframe assigned."), nil, nil
}
