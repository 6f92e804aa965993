package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/designdata-mcp/internal/issues"
	"github.com/wagnerlima/designdata-mcp/internal/models"
	"github.com/wagnerlima/designdata-mcp/internal/store"
)

// defaultAuthor signs comments when no profile has been set.
const defaultAuthor = "Current User"

// CommentTools holds references needed by comment and issue tool handlers.
type CommentTools struct {
	Store   *store.Store
	Tracker issues.Tracker
	// TrackerConfig is handed to the tracker on every call.
	TrackerConfig issues.Config
	Now           Clock
}

// --- Input types ---

type AddCommentInput struct {
	ElementID string   `json:"element_id" jsonschema:"Element the comment is about" validate:"required"`
	Content   string   `json:"content" jsonschema:"Comment text" validate:"required"`
	Mentions  []string `json:"mentions,omitempty" jsonschema:"Mentioned user IDs"`
}

type ListCommentsInput struct {
	ElementID string `json:"element_id,omitempty" jsonschema:"Only list comments on this element"`
}

type CommentIDInput struct {
	ID string `json:"id" jsonschema:"Comment ID" validate:"required"`
}

// --- Handlers ---

func (t *CommentTools) AddComment(_ context.Context, _ *mcp.CallToolRequest, input AddCommentInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	author := defaultAuthor
	if u := t.Store.State().CurrentUser; u != nil && u.Name != "" {
		author = u.Name
	}
	c := models.Comment{
		ID:        uuid.New().String(),
		ElementID: input.ElementID,
		Content:   input.Content,
		Author:    author,
		CreatedAt: t.Now.now(),
		Mentions:  input.Mentions,
	}
	if res := t.Store.AddComment(c); !res.OK() {
		return skipped(res, "comment"), nil, nil
	}
	return toolJSON(c)
}

func (t *CommentTools) ListComments(_ context.Context, _ *mcp.CallToolRequest, input ListCommentsInput) (*mcp.CallToolResult, any, error) {
	st := t.Store.State()
	if input.ElementID == "" {
		return toolJSON(st.Comments)
	}
	return toolJSON(st.CommentsFor(input.ElementID))
}

func (t *CommentTools) DeleteComment(_ context.Context, _ *mcp.CallToolRequest, input CommentIDInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	if res := t.Store.DeleteComment(input.ID); !res.OK() {
		return skipped(res, fmt.Sprintf("comment %q", input.ID)), nil, nil
	}
	return toolText(fmt.Sprintf("Comment %q deleted.", input.ID)), nil, nil
}

func (t *CommentTools) CreateIssue(ctx context.Context, _ *mcp.CallToolRequest, input CommentIDInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	var comment *models.Comment
	for _, c := range t.Store.State().Comments {
		if c.ID == input.ID {
			comment = &c
			break
		}
	}
	if comment == nil {
		return skipped(store.SkippedNotFound, fmt.Sprintf("comment %q", input.ID)), nil, nil
	}

	if t.Tracker == nil || !t.Tracker.Available(ctx) {
		return toolError("Issue tracker integration is not available."), nil, nil
	}
	summary := fmt.Sprintf("Comment on %s by %s", comment.ElementID, comment.Author)
	issue, err := t.Tracker.CreateIssue(ctx, t.TrackerConfig, summary, comment.Content)
	if errors.Is(err, issues.ErrUnavailable) {
		return toolError("Issue tracker integration is not available."), nil, nil
	}
	if err != nil {
		return toolError("Failed to create issue: %v", err), nil, nil
	}
	return toolJSON(issue)
}
