package tools

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/designdata-mcp/internal/models"
	"github.com/wagnerlima/designdata-mcp/internal/session"
	"github.com/wagnerlima/designdata-mcp/internal/store"
)

// SettingsTools holds references needed by profile and settings tool handlers.
type SettingsTools struct {
	Store   *store.Store
	Session *session.Session
}

// --- Input types ---

type SetProfileInput struct {
	Name      string `json:"name" jsonschema:"Display name" validate:"required"`
	Email     string `json:"email" jsonschema:"Email address" validate:"required,email"`
	AvatarURL string `json:"avatar_url,omitempty" jsonschema:"Optional avatar image URL" validate:"omitempty,url"`
}

type SetOpenMetadataConfigInput struct {
	Host     string `json:"host" jsonschema:"OpenMetadata host URL" validate:"required,url"`
	APIToken string `json:"api_token" jsonschema:"OpenMetadata API token" validate:"required"`
}

type SetActiveViewInput struct {
	View string `json:"view" jsonschema:"dashboard, wireframes, dataLineage, schema, profile, settings or help" validate:"required,oneof=dashboard wireframes dataLineage schema profile settings help"`
}

// secretMask replaces stored secrets in get_state output.
const secretMask = "********"

// --- Handlers ---

func (t *SettingsTools) SetProfile(_ context.Context, _ *mcp.CallToolRequest, input SetProfileInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	u := models.User{ID: uuid.New().String(), Name: input.Name, Email: input.Email, AvatarURL: input.AvatarURL}
	if res := t.Store.SetProfile(u); !res.OK() {
		return skipped(res, "profile"), nil, nil
	}
	return toolJSON(t.Store.State().CurrentUser)
}

func (t *SettingsTools) SetOpenMetadataConfig(_ context.Context, _ *mcp.CallToolRequest, input SetOpenMetadataConfigInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	t.Store.SetOpenMetadataConfig(&models.OpenMetadataConfig{Host: input.Host, APIToken: input.APIToken})
	return toolText(fmt.Sprintf("OpenMetadata connection set to %s.", input.Host)), nil, nil
}

func (t *SettingsTools) SetActiveView(_ context.Context, _ *mcp.CallToolRequest, input SetActiveViewInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	t.Store.SetActiveSetting(models.ActiveView(input.View))
	return toolText(fmt.Sprintf("Active view is now %s.", input.View)), nil, nil
}

func (t *SettingsTools) GetState(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	st := t.Store.State()
	if st.FigmaToken != nil {
		masked := secretMask
		st.FigmaToken = &masked
	}
	if st.OpenMetadataConfig != nil {
		st.OpenMetadataConfig.APIToken = secretMask
	}
	return toolJSON(st)
}

func (t *SettingsTools) ResetStore(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	t.Store.ResetStore()
	t.Session.Clear()
	return toolText("Store reset to its initial state."), nil, nil
}
