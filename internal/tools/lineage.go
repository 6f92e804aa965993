package tools

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/designdata-mcp/internal/models"
	"github.com/wagnerlima/designdata-mcp/internal/projection"
	"github.com/wagnerlima/designdata-mcp/internal/session"
	"github.com/wagnerlima/designdata-mcp/internal/store"
)

// LineageTools holds references needed by data-lineage and schema tool handlers.
type LineageTools struct {
	Store   *store.Store
	Session *session.Session
	Now     Clock
}

// --- Input types ---

type ListComponentsInput struct {
	Search string   `json:"search,omitempty" jsonschema:"Case-insensitive match on label or description"`
	Tags   []string `json:"tags,omitempty" jsonschema:"Components must carry all of these tags"`
}

type CreateDataFlowInput struct {
	SourceID    string   `json:"source_id" jsonschema:"Element the data flows from" validate:"required"`
	TargetID    string   `json:"target_id" jsonschema:"Element the data flows to" validate:"required,nefield=SourceID"`
	Name        string   `json:"name" jsonschema:"Transformation name" validate:"required"`
	Description string   `json:"description,omitempty" jsonschema:"Optional description"`
	Tags        []string `json:"tags,omitempty" jsonschema:"Optional tags"`
}

type AddSchemaFieldInput struct {
	LineageID   string   `json:"lineage_id" jsonschema:"Data flow to extend" validate:"required"`
	Name        string   `json:"name" jsonschema:"Field name" validate:"required"`
	Type        string   `json:"type" jsonschema:"Field type: string, number, boolean, date, object or array" validate:"required,oneof=string number boolean date object array"`
	Description string   `json:"description,omitempty" jsonschema:"Optional field description"`
	Required    bool     `json:"required,omitempty" jsonschema:"Whether the field is mandatory"`
	Unique      bool     `json:"unique,omitempty" jsonschema:"Whether values must be unique"`
	MinLength   *int     `json:"min_length,omitempty" jsonschema:"Minimum string length" validate:"omitempty,min=0"`
	MaxLength   *int     `json:"max_length,omitempty" jsonschema:"Maximum string length" validate:"omitempty,min=0"`
	Pattern     string   `json:"pattern,omitempty" jsonschema:"Regular expression values must match"`
	Min         *float64 `json:"min,omitempty" jsonschema:"Minimum numeric value"`
	Max         *float64 `json:"max,omitempty" jsonschema:"Maximum numeric value"`
}

type DataFlowIDInput struct {
	ID string `json:"id" jsonschema:"Data flow ID" validate:"required"`
}

type ReadSchemaGraphInput struct {
	WireframeID string `json:"wireframe_id,omitempty" jsonschema:"Wireframe to focus; empty keeps the current focus"`
}

// CreatedFlow is the result of create_data_flow.
type CreatedFlow struct {
	Lineage models.DataLineage `json:"lineage"`
	Graph   projection.Graph   `json:"graph"`
}

// ExportResult is the result of export_data_flow.
type ExportResult struct {
	FileName string              `json:"fileName"`
	Document projection.Document `json:"document"`
}

// --- Handlers ---

func (t *LineageTools) ListComponents(_ context.Context, _ *mcp.CallToolRequest, input ListComponentsInput) (*mcp.CallToolResult, any, error) {
	f := projection.Filter{Search: input.Search, Tags: input.Tags}
	t.Session.SetFilter(f)
	return toolJSON(projection.Components(t.Store.State(), f))
}

func (t *LineageTools) CreateDataFlow(_ context.Context, _ *mcp.CallToolRequest, input CreateDataFlowInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	st := t.Store.State()
	components := projection.Components(st, t.Session.Filter())
	for _, id := range []string{input.SourceID, input.TargetID} {
		if !slices.ContainsFunc(components, func(c projection.Component) bool { return c.Element.ID == id }) {
			return toolError("Element %q is not a selectable component (it needs at least one data link and must match the current filter)", id), nil, nil
		}
	}

	now := t.Now.now()
	l := models.DataLineage{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Source:    input.SourceID,
		Target:    input.TargetID,
		Schema:    []models.SchemaField{},
		CreatedAt: &now,
	}
	if st.CurrentUser != nil {
		l.CreatedBy = st.CurrentUser.Name
	}
	if res := t.Store.AddDataLineage(l); !res.OK() {
		return skipped(res, "data flow"), nil, nil
	}

	g := projection.FlowChain(t.Store.State(), projection.FlowRequest{
		SourceID:    input.SourceID,
		TargetID:    input.TargetID,
		Name:        input.Name,
		Description: input.Description,
		Tags:        input.Tags,
	})
	t.Session.SetFlow(g)
	t.Session.SelectLineage(l.ID)

	return toolJSON(CreatedFlow{Lineage: l, Graph: g})
}

func (t *LineageTools) ListDataFlows(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.Store.State().DataLineage)
}

func (t *LineageTools) AddSchemaField(_ context.Context, _ *mcp.CallToolRequest, input AddSchemaFieldInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	if input.MinLength != nil && input.MaxLength != nil && *input.MinLength > *input.MaxLength {
		return toolError("Invalid input: min_length must not exceed max_length"), nil, nil
	}
	if input.Min != nil && input.Max != nil && *input.Min > *input.Max {
		return toolError("Invalid input: min must not exceed max"), nil, nil
	}

	field := models.SchemaField{
		Name:        input.Name,
		Type:        models.FieldType(input.Type),
		Description: input.Description,
		Required:    input.Required,
	}
	if input.Unique || input.MinLength != nil || input.MaxLength != nil || input.Pattern != "" || input.Min != nil || input.Max != nil {
		field.Constraints = &models.FieldConstraints{
			Unique:    input.Unique,
			MinLength: input.MinLength,
			MaxLength: input.MaxLength,
			Pattern:   input.Pattern,
			Min:       input.Min,
			Max:       input.Max,
		}
	}

	switch res := t.Store.AddSchemaField(input.LineageID, field); res {
	case store.Applied:
	case store.SkippedDuplicate:
		return toolError("Field %q already exists in data flow %q", input.Name, input.LineageID), nil, nil
	default:
		return skipped(res, fmt.Sprintf("data flow %q", input.LineageID)), nil, nil
	}
	t.Session.SelectLineage(input.LineageID)

	l, _ := t.Store.State().Lineage(input.LineageID)
	return toolJSON(l)
}

func (t *LineageTools) DeleteDataFlow(_ context.Context, _ *mcp.CallToolRequest, input DataFlowIDInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	if res := t.Store.DeleteDataLineage(input.ID); !res.OK() {
		return skipped(res, fmt.Sprintf("data flow %q", input.ID)), nil, nil
	}
	if t.Session.Lineage() == input.ID {
		t.Session.SelectLineage("")
	}
	return toolText(fmt.Sprintf("Data flow %q deleted.", input.ID)), nil, nil
}

func (t *LineageTools) ReadSchemaGraph(_ context.Context, _ *mcp.CallToolRequest, input ReadSchemaGraphInput) (*mcp.CallToolResult, any, error) {
	canvas := t.Session.SchemaCanvas()
	if input.WireframeID != "" {
		return toolJSON(t.Session.SelectSchemaWireframe(input.WireframeID))
	}
	if canvas.Selected() == "" {
		return toolText("No wireframe is focused in the schema view. Pass wireframe_id to pick one."), nil, nil
	}
	return toolJSON(canvas.Graph())
}

func (t *LineageTools) ExportDataFlow(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	now := t.Now.now()
	doc := projection.Export(t.Session.Flow(), t.Store.State().DataLineage, now)
	return toolJSON(ExportResult{FileName: projection.FileName(now), Document: doc})
}
