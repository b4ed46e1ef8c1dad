package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/activate-window/internal/activate"
	"github.com/mj1618/activate-window/internal/output"
	"github.com/mj1618/activate-window/internal/version"
)

// mcpServer exposes the engine as MCP tools.
type mcpServer struct {
	engine *activate.Engine
	mcp    *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// newMCPServer creates and configures an MCP server around engine.
func newMCPServer(engine *activate.Engine) *mcpServer {
	s := &mcpServer{engine: engine}
	s.mcp = mcpserver.NewMCPServer(
		"activate-window",
		version.Version,
	)
	s.registerTools()
	return s
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// textTools are the activate tools that take one string argument.
var textTools = []struct {
	name  string
	param string
	desc  string
	build func(string) activate.Matcher
}{
	{"activate_by_title", "title", "Raise the first window whose title equals the given text exactly (case-sensitive)", activate.Title},
	{"activate_by_prefix", "prefix", "Raise the first window whose title starts with the given text", activate.Prefix},
	{"activate_by_suffix", "suffix", "Raise the first window whose title ends with the given text", activate.Suffix},
	{"activate_by_substring", "substring", "Raise the first window whose title contains the given text", activate.Substring},
	{"activate_by_wm_class", "name", "Raise the first window whose WM_CLASS class name equals the given text", activate.WMClass},
	{"activate_by_wm_class_instance", "instance", "Raise the first window whose WM_CLASS instance name equals the given text", activate.WMClassInstance},
}

func (s *mcpServer) registerTools() {
	for _, tool := range textTools {
		s.mcp.AddTool(
			mcp.NewTool(tool.name,
				mcp.WithDescription(tool.desc),
				mcp.WithString(tool.param, mcp.Required(), mcp.Description("Text to match")),
			),
			s.textActivateHandler(tool.param, tool.build),
		)
	}

	s.mcp.AddTool(
		mcp.NewTool("activate_by_id",
			mcp.WithDescription("Raise the window with the given identifier"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Window identifier, decimal or 0x-prefixed hex")),
		),
		s.handleActivateByID,
	)

	s.mcp.AddTool(
		mcp.NewTool("set_sort_order",
			mcp.WithDescription("Set the order windows are searched in; returns the previous order"),
			mcp.WithString("sort_order", mcp.Required(),
				mcp.Description("One of: "+sortOrderNames()),
			),
		),
		s.handleSetSortOrder,
	)

	s.mcp.AddTool(
		mcp.NewTool("set_current_desktop_first",
			mcp.WithDescription("Search windows on the active workspace first; returns the previous value"),
			mcp.WithBoolean("value", mcp.Required(), mcp.Description("New value")),
		),
		s.handleSetCurrentDesktopFirst,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List open windows in the order they are searched"),
		),
		s.handleListWindows,
	)
}

func toolText(v interface{}) (*mcp.CallToolResult, error) {
	text, err := output.YAMLString(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *mcpServer) activate(ctx context.Context, m activate.Matcher) (*mcp.CallToolResult, error) {
	found, err := s.engine.Activate(ctx, m)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolText(output.ActivateResult{Found: found, Strategy: m.Strategy.String(), Value: m.Value()})
}

func (s *mcpServer) textActivateHandler(param string, build func(string) activate.Matcher) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		v, ok := stringArg(request.GetArguments(), param)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("%s parameter is required", param)), nil
		}
		return s.activate(ctx, build(v))
	}
}

func (s *mcpServer) handleActivateByID(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := stringArg(request.GetArguments(), "id")
	if !ok {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid id %q: %v", raw, err)), nil
	}
	return s.activate(ctx, activate.ID(id))
}

func (s *mcpServer) handleSetSortOrder(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	order, ok := stringArg(request.GetArguments(), "sort_order")
	if !ok {
		return mcp.NewToolResultError("sort_order parameter is required"), nil
	}
	old, err := s.engine.SetSortOrder(order)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolText(output.SettingResult{Setting: "sort_order", Old: old, New: order})
}

func (s *mcpServer) handleSetCurrentDesktopFirst(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, ok := request.GetArguments()["value"].(bool)
	if !ok {
		return mcp.NewToolResultError("value parameter is required and must be a boolean"), nil
	}
	old := s.engine.SetCurrentDesktopFirst(v)
	return toolText(output.SettingResult{Setting: "current_desktop_first", Old: old, New: v})
}

func (s *mcpServer) handleListWindows(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	windows, err := s.engine.Windows(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	st := s.engine.Settings()
	return toolText(output.NewListResult(s.engine.Backend(), st.SortOrder, st.CurrentDesktopFirst, windows))
}

// stringArg returns params[key] when it is a string.
func stringArg(params map[string]interface{}, key string) (string, bool) {
	v, ok := params[key].(string)
	return v, ok
}
