package tools

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const mcpServerName = "webmcpsetup"

// NewMCPServer publishes every registry tool on an MCP server. Calls go through
// Registry.Call, so the HTTP API and MCP share one behaviour.
func NewMCPServer(registry *Registry, version string) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		mcpServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Tools for requesting a WebMCP setup. Call get_intake_form_schema, then validate_intake, then submit_intake."),
	)

	for _, t := range registry.List() {
		def, err := mcpTool(t)
		if err != nil {
			return nil, err
		}
		s.AddTool(def, mcpHandler(registry, t.Name))
	}
	return s, nil
}

// NewMCPHandler serves the MCP server over streamable HTTP.
func NewMCPHandler(registry *Registry, version string) (http.Handler, error) {
	s, err := NewMCPServer(registry, version)
	if err != nil {
		return nil, err
	}
	return server.NewStreamableHTTPServer(s), nil
}

func mcpTool(t Tool) (mcp.Tool, error) {
	schema, err := json.Marshal(t.InputSchema)
	if err != nil {
		return mcp.Tool{}, err
	}
	def := mcp.NewToolWithRawSchema(t.Name, t.Description, schema)
	def.Annotations.ReadOnlyHint = mcp.ToBoolPtr(t.ReadOnly)
	def.Annotations.DestructiveHint = mcp.ToBoolPtr(false)
	return def, nil
}

func mcpHandler(registry *Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := registry.Call(ctx, name, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError("failed to encode result"), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}
