package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/wagnerlima/designdata-mcp/internal/figma"
	"github.com/wagnerlima/designdata-mcp/internal/models"
	"github.com/wagnerlima/designdata-mcp/internal/session"
	"github.com/wagnerlima/designdata-mcp/internal/store"
)

// WireframeTools holds references needed by wireframe and element tool handlers.
type WireframeTools struct {
	Store   *store.Store
	Session *session.Session
	Figma   *figma.Client
	Logger  *zap.Logger
	Now     Clock
	// RefreshConcurrency bounds concurrent preview refreshes after a token change.
	RefreshConcurrency int
}

// --- Input types ---

type SetFigmaTokenInput struct {
	Token string `json:"token" jsonschema:"Figma personal access token" validate:"required"`
}

type ImportWireframeInput struct {
	Name string `json:"name" jsonschema:"Display name of the wireframe" validate:"required"`
	URL  string `json:"url" jsonschema:"Figma file or design URL" validate:"required,url"`
}

type RenameWireframeInput struct {
	ID   string `json:"id" jsonschema:"Wireframe ID (the Figma file key)" validate:"required"`
	Name string `json:"name" jsonschema:"New display name" validate:"required"`
}

type WireframeIDInput struct {
	ID string `json:"id" jsonschema:"Wireframe ID (the Figma file key)" validate:"required"`
}

type AddElementInput struct {
	WireframeID string   `json:"wireframe_id" jsonschema:"Wireframe to add the element to" validate:"required"`
	Label       string   `json:"label" jsonschema:"Element label" validate:"required"`
	Type        string   `json:"type,omitempty" jsonschema:"Element type: component, container, input or button (default component)" validate:"omitempty,oneof=component container input button"`
	Description string   `json:"description,omitempty" jsonschema:"Optional element description"`
	Tags        []string `json:"tags,omitempty" jsonschema:"Optional tags"`
	X           *float64 `json:"x,omitempty" jsonschema:"Canvas x coordinate"`
	Y           *float64 `json:"y,omitempty" jsonschema:"Canvas y coordinate"`
}

type MoveElementInput struct {
	WireframeID string  `json:"wireframe_id" jsonschema:"Wireframe that holds the element" validate:"required"`
	ElementID   string  `json:"element_id" jsonschema:"Element to move" validate:"required"`
	X           float64 `json:"x" jsonschema:"New x coordinate"`
	Y           float64 `json:"y" jsonschema:"New y coordinate"`
}

type ElementRefInput struct {
	WireframeID string `json:"wireframe_id" jsonschema:"Wireframe that holds the element" validate:"required"`
	ElementID   string `json:"element_id" jsonschema:"Element ID" validate:"required"`
}

type ConnectElementsInput struct {
	WireframeID string `json:"wireframe_id" jsonschema:"Wireframe that holds both elements" validate:"required"`
	SourceID    string `json:"source_id" jsonschema:"Element the data flows from" validate:"required"`
	TargetID    string `json:"target_id" jsonschema:"Element the data flows to" validate:"required,nefield=SourceID"`
	Type        string `json:"type,omitempty" jsonschema:"Link type (default: default)"`
	Description string `json:"description,omitempty" jsonschema:"Optional link description"`
}

type DeleteDataLinkInput struct {
	WireframeID string `json:"wireframe_id" jsonschema:"Wireframe that holds the element" validate:"required"`
	ElementID   string `json:"element_id" jsonschema:"Element that owns the link (its source)" validate:"required"`
	LinkID      string `json:"link_id" jsonschema:"Link ID" validate:"required"`
}

type ReadWireframeGraphInput struct {
	WireframeID string `json:"wireframe_id,omitempty" jsonschema:"Wireframe to focus; empty keeps the current focus"`
}

// WireframeSummary is the list view of a wireframe.
type WireframeSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	ProjectID string `json:"projectId"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Elements  int    `json:"elements"`
}

// --- Handlers ---

func (t *WireframeTools) SetFigmaToken(ctx context.Context, _ *mcp.CallToolRequest, input SetFigmaTokenInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	if err := t.Figma.Me(ctx, input.Token); err != nil {
		return toolError("%s", figmaMessage(err)), nil, nil
	}
	t.Store.SetFigmaToken(&input.Token)

	st := t.Store.State()
	keys := make([]string, 0, len(st.Wireframes))
	for _, w := range st.Wireframes {
		keys = append(keys, w.FigmaFileKey)
	}
	previews := t.Figma.RefreshPreviews(ctx, input.Token, keys, t.RefreshConcurrency)

	refreshed := 0
	now := t.Now.now()
	for _, w := range st.Wireframes {
		img, ok := previews[w.FigmaFileKey]
		if !ok {
			continue
		}
		if t.Store.UpdateWireframe(w.ID, models.WireframePatch{ImageURL: &img, UpdatedAt: &now}).OK() {
			refreshed++
		}
	}

	t.logger().Info("figma token updated", zap.Int("wireframes", len(keys)), zap.Int("refreshed", refreshed))
	return toolText(fmt.Sprintf("Figma token saved. Refreshed %d of %d wireframe previews.", refreshed, len(keys))), nil, nil
}

func (t *WireframeTools) ImportWireframe(ctx context.Context, _ *mcp.CallToolRequest, input ImportWireframeInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	st := t.Store.State()
	if st.FigmaToken == nil || *st.FigmaToken == "" {
		return toolError("%s", figmaMessage(figma.ErrTokenRequired)), nil, nil
	}
	key, err := figma.ExtractFileKey(input.URL)
	if err != nil {
		return toolError("%s", figmaMessage(err)), nil, nil
	}
	if _, ok := st.Wireframe(key); ok {
		return skipped(store.SkippedDuplicate, fmt.Sprintf("Wireframe %q", key)), nil, nil
	}

	preview, err := t.Figma.FetchPreview(ctx, *st.FigmaToken, key)
	if err != nil {
		t.logger().Warn("wireframe import failed", zap.String("fileKey", key), zap.Error(err))
		return toolError("%s", figmaMessage(err)), nil, nil
	}

	now := t.Now.now()
	w := models.Wireframe{
		ID:           key,
		FigmaFileKey: key,
		Name:         input.Name,
		URL:          input.URL,
		ImageURL:     preview.ImageURL,
		Elements:     []models.WireframeElement{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if res := t.Store.AddWireframe(w); !res.OK() {
		return skipped(res, fmt.Sprintf("Wireframe %q", key)), nil, nil
	}
	t.Session.SelectWireframe(key)

	return toolJSON(w)
}

func (t *WireframeTools) ListWireframes(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	st := t.Store.State()
	out := make([]WireframeSummary, 0, len(st.Wireframes))
	for _, w := range st.Wireframes {
		out = append(out, WireframeSummary{
			ID:        w.ID,
			Name:      w.Name,
			URL:       w.URL,
			ProjectID: w.ProjectID,
			ImageURL:  w.ImageURL,
			Elements:  len(w.Elements),
		})
	}
	return toolJSON(out)
}

func (t *WireframeTools) RenameWireframe(_ context.Context, _ *mcp.CallToolRequest, input RenameWireframeInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	now := t.Now.now()
	if res := t.Store.UpdateWireframe(input.ID, models.WireframePatch{Name: &input.Name, UpdatedAt: &now}); !res.OK() {
		return skipped(res, fmt.Sprintf("wireframe %q", input.ID)), nil, nil
	}
	w, _ := t.Store.State().Wireframe(input.ID)
	return toolJSON(w)
}

func (t *WireframeTools) DeleteWireframe(_ context.Context, _ *mcp.CallToolRequest, input WireframeIDInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	if res := t.Store.DeleteWireframe(input.ID); !res.OK() {
		return skipped(res, fmt.Sprintf("wireframe %q", input.ID)), nil, nil
	}
	return toolText(fmt.Sprintf("Wireframe %q deleted.", input.ID)), nil, nil
}

func (t *WireframeTools) AddElement(_ context.Context, _ *mcp.CallToolRequest, input AddElementInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	w, ok := t.Store.State().Wireframe(input.WireframeID)
	if !ok {
		return skipped(store.SkippedNotFound, fmt.Sprintf("wireframe %q", input.WireframeID)), nil, nil
	}

	typ := models.ElementComponent
	if input.Type != "" {
		typ = models.ElementType(input.Type)
	}
	pos := defaultPosition(len(w.Elements))
	if input.X != nil {
		pos.X = *input.X
	}
	if input.Y != nil {
		pos.Y = *input.Y
	}

	e := models.WireframeElement{
		ID:       uuid.New().String(),
		Type:     typ,
		Position: pos,
		Data: models.ElementData{
			Label:       input.Label,
			Description: input.Description,
			DataLinks:   []models.DataLink{},
			Tags:        input.Tags,
		},
	}
	if res := t.Store.AddElement(input.WireframeID, e); !res.OK() {
		return skipped(res, fmt.Sprintf("wireframe %q", input.WireframeID)), nil, nil
	}
	return toolJSON(e)
}

func (t *WireframeTools) MoveElement(_ context.Context, _ *mcp.CallToolRequest, input MoveElementInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	pos := models.Position{X: input.X, Y: input.Y}
	if res := t.Store.MoveElement(input.WireframeID, input.ElementID, pos); !res.OK() {
		return skipped(res, fmt.Sprintf("element %q in wireframe %q", input.ElementID, input.WireframeID)), nil, nil
	}
	return toolText(fmt.Sprintf("Element %q moved to (%g, %g).", input.ElementID, input.X, input.Y)), nil, nil
}

func (t *WireframeTools) DeleteElement(_ context.Context, _ *mcp.CallToolRequest, input ElementRefInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	if res := t.Store.DeleteElement(input.WireframeID, input.ElementID); !res.OK() {
		return skipped(res, fmt.Sprintf("element %q in wireframe %q", input.ElementID, input.WireframeID)), nil, nil
	}
	return toolText(fmt.Sprintf("Element %q and its comments deleted.", input.ElementID)), nil, nil
}

func (t *WireframeTools) ConnectElements(_ context.Context, _ *mcp.CallToolRequest, input ConnectElementsInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	w, ok := t.Store.State().Wireframe(input.WireframeID)
	if !ok {
		return skipped(store.SkippedNotFound, fmt.Sprintf("wireframe %q", input.WireframeID)), nil, nil
	}
	if !hasElement(w, input.TargetID) {
		return toolError("Target element %q is not in wireframe %q", input.TargetID, input.WireframeID), nil, nil
	}

	typ := input.Type
	if typ == "" {
		typ = "default"
	}
	link := models.DataLink{
		ID:          uuid.New().String(),
		SourceID:    input.SourceID,
		TargetID:    input.TargetID,
		Type:        typ,
		Description: input.Description,
	}
	if res := t.Store.AddDataLink(input.WireframeID, link); !res.OK() {
		return skipped(res, fmt.Sprintf("element %q in wireframe %q", input.SourceID, input.WireframeID)), nil, nil
	}
	return toolJSON(link)
}

func (t *WireframeTools) DeleteDataLink(_ context.Context, _ *mcp.CallToolRequest, input DeleteDataLinkInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	if res := t.Store.DeleteDataLink(input.WireframeID, input.ElementID, input.LinkID); !res.OK() {
		return skipped(res, fmt.Sprintf("link %q on element %q", input.LinkID, input.ElementID)), nil, nil
	}
	return toolText(fmt.Sprintf("Link %q deleted.", input.LinkID)), nil, nil
}

func (t *WireframeTools) ReadWireframeGraph(_ context.Context, _ *mcp.CallToolRequest, input ReadWireframeGraphInput) (*mcp.CallToolResult, any, error) {
	canvas := t.Session.WireframeCanvas()
	if input.WireframeID != "" {
		return toolJSON(t.Session.SelectWireframe(input.WireframeID))
	}
	if canvas.Selected() == "" {
		return toolText("No wireframe is focused. Pass wireframe_id to pick one."), nil, nil
	}
	return toolJSON(canvas.Graph())
}

// --- Helpers ---

func (t *WireframeTools) logger() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}

// defaultPosition lays new elements out on a six-column grid.
func defaultPosition(n int) models.Position {
	return models.Position{X: float64(100 + (n%6)*60), Y: float64(100 + (n/6)*60)}
}

func hasElement(w models.Wireframe, id string) bool {
	for _, e := range w.Elements {
		if e.ID == id {
			return true
		}
	}
	return false
}

// figmaMessage turns an import failure into the message shown to the user.
func figmaMessage(err error) string {
	switch {
	case errors.Is(err, figma.ErrTokenRequired):
		return "Please set your Figma access token first."
	case errors.Is(err, figma.ErrInvalidToken):
		return "Invalid Figma access token. Please check your token and try again."
	case errors.Is(err, figma.ErrFileNotFound):
		return "Figma file not found. Please check the URL and make sure you have access to this file."
	case errors.Is(err, figma.ErrMalformedDocument):
		return "Invalid Figma file structure."
	case errors.Is(err, figma.ErrNoPreview):
		return "No image URL returned from Figma."
	case errors.Is(err, figma.ErrInvalidURL):
		return "Invalid Figma URL. Please use a valid Figma design URL."
	default:
		return fmt.Sprintf("Figma request failed: %v", err)
	}
}
