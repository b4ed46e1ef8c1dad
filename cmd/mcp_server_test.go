package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mj1618/activate-window/internal/activate"
	"github.com/mj1618/activate-window/internal/model"
	"github.com/mj1618/activate-window/internal/platform/fake"
)

func newTestMCPServer(t *testing.T, windows ...model.Window) (*mcpServer, *fake.Host) {
	t.Helper()
	host := fake.New(windows...)
	engine, err := activate.New(host, nil)
	if err != nil {
		t.Fatal(err)
	}
	return newMCPServer(engine), host
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestMCP_ActivateByTitle(t *testing.T) {
	s, host := newTestMCPServer(t,
		model.Window{ID: 1, Title: model.StringPtr("Inbox - Mail")},
		model.Window{ID: 2, Title: model.StringPtr("Terminal")},
	)

	handler := s.textActivateHandler("title", activate.Title)
	result, err := handler(context.Background(), callRequest(map[string]interface{}{"title": "Terminal"}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	if text := resultText(t, result); !strings.Contains(text, "found: true") {
		t.Errorf("expected found: true, got:\n%s", text)
	}
	acts := host.Activations()
	if len(acts) != 1 || acts[0].Window.ID != 2 {
		t.Errorf("expected window 2 activated, got %+v", acts)
	}
}

func TestMCP_ActivateNoMatch(t *testing.T) {
	s, host := newTestMCPServer(t, model.Window{ID: 1, Title: model.StringPtr("Terminal")})

	handler := s.textActivateHandler("prefix", activate.Prefix)
	result, err := handler(context.Background(), callRequest(map[string]interface{}{"prefix": "Mail"}))
	if err != nil {
		t.Fatal(err)
	}
	if text := resultText(t, result); !strings.Contains(text, "found: false") {
		t.Errorf("expected found: false, got:\n%s", text)
	}
	if len(host.Activations()) != 0 {
		t.Error("nothing should be activated")
	}
}

func TestMCP_MissingArgument(t *testing.T) {
	s, _ := newTestMCPServer(t)

	handler := s.textActivateHandler("title", activate.Title)
	result, err := handler(context.Background(), callRequest(map[string]interface{}{"title": 3}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected a tool error for a non-string title")
	}
}

func TestMCP_ActivateByID(t *testing.T) {
	s, host := newTestMCPServer(t,
		model.Window{ID: 0x3a00007, WMClass: "Firefox"},
		model.Window{ID: 18446744073709551615, WMClass: "Big"},
	)

	for _, id := range []string{"0x3a00007", "18446744073709551615"} {
		result, err := s.handleActivateByID(context.Background(), callRequest(map[string]interface{}{"id": id}))
		if err != nil {
			t.Fatal(err)
		}
		if result.IsError {
			t.Fatalf("id %s: unexpected tool error: %s", id, resultText(t, result))
		}
	}
	acts := host.Activations()
	if len(acts) != 2 || acts[0].Window.ID != 0x3a00007 || acts[1].Window.ID != 18446744073709551615 {
		t.Errorf("unexpected activations: %+v", acts)
	}

	result, _ := s.handleActivateByID(context.Background(), callRequest(map[string]interface{}{"id": "window"}))
	if !result.IsError {
		t.Error("expected a tool error for a non-numeric id")
	}
}

func TestMCP_SetSortOrder(t *testing.T) {
	s, _ := newTestMCPServer(t)

	result, err := s.handleSetSortOrder(context.Background(), callRequest(map[string]interface{}{"sort_order": "highest_window_id"}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	text := resultText(t, result)
	if !strings.Contains(text, "old: default") || !strings.Contains(text, "new: highest_window_id") {
		t.Errorf("unexpected result:\n%s", text)
	}
	if got := s.engine.Settings().SortOrder; got != model.SortHighestWindowID {
		t.Errorf("sort order = %s", got)
	}

	result, _ = s.handleSetSortOrder(context.Background(), callRequest(map[string]interface{}{"sort_order": "newest"}))
	if !result.IsError {
		t.Error("expected a tool error for an unknown sort order")
	}
	if got := s.engine.Settings().SortOrder; got != model.SortHighestWindowID {
		t.Errorf("rejected order changed the setting to %s", got)
	}
}

func TestMCP_SetCurrentDesktopFirst(t *testing.T) {
	s, _ := newTestMCPServer(t)

	result, err := s.handleSetCurrentDesktopFirst(context.Background(), callRequest(map[string]interface{}{"value": true}))
	if err != nil {
		t.Fatal(err)
	}
	if text := resultText(t, result); !strings.Contains(text, "old: false") || !strings.Contains(text, "new: true") {
		t.Errorf("unexpected result:\n%s", text)
	}
	if !s.engine.Settings().CurrentDesktopFirst {
		t.Error("setting not applied")
	}

	result, _ = s.handleSetCurrentDesktopFirst(context.Background(), callRequest(map[string]interface{}{"value": "yes"}))
	if !result.IsError {
		t.Error("expected a tool error for a non-boolean value")
	}
}

func TestMCP_ListWindows(t *testing.T) {
	s, _ := newTestMCPServer(t,
		model.Window{ID: 5, Title: model.StringPtr("Five"), WMClass: "App"},
		model.Window{ID: 7, WMClass: "Untitled"},
	)

	result, err := s.handleListWindows(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	text := resultText(t, result)
	for _, want := range []string{"backend: fake", "sort_order: default", "title: Five", "title: null", "0x5"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in:\n%s", want, text)
		}
	}
}

func TestMCP_ServeRejectsUnknownTransport(t *testing.T) {
	s, _ := newTestMCPServer(t)
	if err := s.serve(MCPConfig{Transport: "sse"}); err == nil {
		t.Error("expected error for unsupported transport")
	}
}
