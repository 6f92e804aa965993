package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/wagnerlima/designdata-mcp/internal/figma"
	"github.com/wagnerlima/designdata-mcp/internal/issues"
	"github.com/wagnerlima/designdata-mcp/internal/session"
	"github.com/wagnerlima/designdata-mcp/internal/store"
	"github.com/wagnerlima/designdata-mcp/internal/tools"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// Deps are the collaborators shared by every tool handler.
type Deps struct {
	Store  *store.Store
	Figma  *figma.Client
	Logger *zap.Logger
	// Tracker defaults to issues.Disabled.
	Tracker       issues.Tracker
	TrackerConfig issues.Config
	// Now defaults to the wall clock in UTC.
	Now                tools.Clock
	RefreshConcurrency int
}

// New creates a fully configured MCP server with all tools registered. The
// returned cleanup detaches the session views from the store.
func New(d Deps) (*mcp.Server, func()) {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Tracker == nil {
		d.Tracker = issues.Disabled{}
	}
	if d.Figma == nil {
		d.Figma = figma.New(figma.WithLogger(d.Logger))
	}

	sess := session.New(d.Store)

	pt := &tools.ProjectTools{Store: d.Store, Now: d.Now}
	wt := &tools.WireframeTools{
		Store:              d.Store,
		Session:            sess,
		Figma:              d.Figma,
		Logger:             d.Logger,
		Now:                d.Now,
		RefreshConcurrency: d.RefreshConcurrency,
	}
	lt := &tools.LineageTools{Store: d.Store, Session: sess, Now: d.Now}
	ct := &tools.CommentTools{Store: d.Store, Tracker: d.Tracker, TrackerConfig: d.TrackerConfig, Now: d.Now}
	st := &tools.SettingsTools{Store: d.Store, Session: sess}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "designdata-mcp",
		Version: Version,
	}, nil)

	// Project tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_projects",
		Description: "List all projects of this session (projects are not persisted)",
	}, pt.ListProjects)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_project",
		Description: "Create a project and focus it",
	}, pt.CreateProject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project; its wireframes stay in the global list",
	}, pt.DeleteProject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "select_project",
		Description: "Focus a project by ID, or clear the focus with an empty ID",
	}, pt.SelectProject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_current_project",
		Description: "Get the focused project",
	}, pt.GetCurrentProject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "assign_wireframe",
		Description: "Move a wireframe into a project (a wireframe belongs to at most one project)",
	}, pt.AssignWireframe)

	// Wireframe tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "set_figma_token",
		Description: "Validate and save the Figma access token, then refresh every wireframe preview",
	}, wt.SetFigmaToken)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "import_wireframe",
		Description: "Import a Figma design by URL and render its first frame as the preview (requires a Figma token)",
	}, wt.ImportWireframe)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_wireframes",
		Description: "List imported wireframes",
	}, wt.ListWireframes)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "rename_wireframe",
		Description: "Change the display name of a wireframe",
	}, wt.RenameWireframe)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_wireframe",
		Description: "Delete a wireframe and remove it from every project",
	}, wt.DeleteWireframe)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "add_element",
		Description: "Add an annotated element to a wireframe",
	}, wt.AddElement)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "move_element",
		Description: "Move an element on the wireframe canvas",
	}, wt.MoveElement)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_element",
		Description: "Delete an element and every comment on it (data flows referencing it are kept)",
	}, wt.DeleteElement)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "connect_elements",
		Description: "Add a directed data link between two elements of a wireframe",
	}, wt.ConnectElements)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_data_link",
		Description: "Remove a data link from the element that owns it",
	}, wt.DeleteDataLink)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "read_wireframe_graph",
		Description: "Read the node/edge graph of the focused wireframe",
	}, wt.ReadWireframeGraph)

	// Lineage tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_components",
		Description: "List elements with data links, filtered by search term and tags",
	}, lt.ListComponents)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_data_flow",
		Description: "Create a named data flow between two components and draw its source-transform-target chain",
	}, lt.CreateDataFlow)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_data_flows",
		Description: "List all data flows",
	}, lt.ListDataFlows)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "add_schema_field",
		Description: "Append a typed field to a data flow's schema",
	}, lt.AddSchemaField)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_data_flow",
		Description: "Delete a data flow",
	}, lt.DeleteDataFlow)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "read_schema_graph",
		Description: "Read the schema view of a wireframe: its elements plus the data flows touching them",
	}, lt.ReadSchemaGraph)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "export_data_flow",
		Description: "Export the last drawn data flow chain and all data flows as a JSON document",
	}, lt.ExportDataFlow)

	// Comment tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "add_comment",
		Description: "Comment on an element",
	}, ct.AddComment)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_comments",
		Description: "List comments, optionally only those on one element",
	}, ct.ListComments)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_comment",
		Description: "Delete a comment",
	}, ct.DeleteComment)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_issue",
		Description: "Open an issue-tracker ticket from a comment (if an integration is available)",
	}, ct.CreateIssue)

	// Settings tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "set_profile",
		Description: "Set the current user profile",
	}, st.SetProfile)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "set_openmetadata_config",
		Description: "Set the OpenMetadata connection settings",
	}, st.SetOpenMetadataConfig)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "set_active_view",
		Description: "Switch the active top-level view",
	}, st.SetActiveView)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_state",
		Description: "Read the whole state with secrets masked",
	}, st.GetState)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "reset_store",
		Description: "Reset everything to the initial state (irreversible)",
	}, st.ResetStore)

	return srv, sess.Close
}
