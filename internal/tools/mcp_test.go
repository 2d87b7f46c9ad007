package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("expected content in result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

func TestNewMCPServer(t *testing.T) {
	r, _ := newTestRegistry(t, 5)
	s, err := NewMCPServer(r, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s == nil {
		t.Fatal("expected server")
	}
	h, err := NewMCPHandler(r, "test")
	if err != nil || h == nil {
		t.Fatalf("expected handler, got %v / %v", h, err)
	}
}

func TestMCPTool_Definition(t *testing.T) {
	r, _ := newTestRegistry(t, 5)
	tool, _ := r.Lookup(SubmitIntake)

	def, err := mcpTool(tool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Name != SubmitIntake {
		t.Fatalf("unexpected name %q", def.Name)
	}
	if def.Annotations.ReadOnlyHint == nil || *def.Annotations.ReadOnlyHint {
		t.Fatal("submit_intake must not be read-only")
	}
	var schema map[string]any
	if err := json.Unmarshal(def.RawInputSchema, &schema); err != nil {
		t.Fatalf("raw schema is not JSON: %v", err)
	}
	if _, ok := schema["properties"].(map[string]any)["payload"]; !ok {
		t.Fatalf("expected payload property, got %v", schema)
	}
}

func TestMCPHandler_Submit(t *testing.T) {
	r, _ := newTestRegistry(t, 5)
	handler := mcpHandler(r, SubmitIntake)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"payload": validPayload()}
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(resultText(t, result)), &out); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if out["success"] != true {
		t.Fatalf("expected success, got %v", out)
	}
}

func TestMCPHandler_InvalidInputIsToolError(t *testing.T) {
	r, _ := newTestRegistry(t, 5)
	handler := mcpHandler(r, ValidateIntake)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{}
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for missing payload")
	}
}
