// Package mcp exposes the running daemon to MCP clients over stdio.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/moves/internal/ipc"
	"github.com/1broseidon/moves/internal/placement"
)

const (
	ServerName    = "moves"
	ServerVersion = "0.1.0"
)

// Daemon is the IPC surface the tools call.
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	SetEnabled(enabled, persist bool) error
	PlaceTemplate(template string) (*ipc.PlacementData, error)
	PlaceCustom(custom placement.Custom) (*ipc.PlacementData, error)
	OpenURL(rawURL string) (*ipc.PlacementData, error)
}

// Server is the MCP server for window placement.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
}

// NewServer creates a new MCP server talking to daemon.
func NewServer(daemon Daemon) *Server {
	s := &Server{daemon: daemon}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report whether modifier drags are enabled, which modifiers trigger move and resize, and the drag in progress if any.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_enabled",
		Description: "Enable or disable moving and resizing windows with modifier keys. Disabling ends any drag in progress.",
	}, s.handleSetEnabled)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_templates",
		Description: "List the named placement templates accepted by place_template.",
	}, s.handleListTemplates)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "place_template",
		Description: "Snap the focused window to a named template (halves, quarters, thirds, maximize, center) on its display's usable area.",
	}, s.handlePlaceTemplate)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "place_custom",
		Description: "Move the focused window to an anchored position with optional absolute or relative size and offsets. Missing sizes keep the window's current size.",
	}, s.handlePlaceCustom)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_url",
		Description: "Apply a moves:// placement URL to the focused window.",
	}, s.handleOpenURL)
}
