package tools

import (
	"context"
	"testing"

	"github.com/madstone-tech/loko/internal/mcp"
)

func TestQueryNarrativeTool_RequiresPriorCompile(t *testing.T) {
	cache := mcp.NewDocCache()
	tool := NewQueryNarrativeTool(cache)

	_, err := tool.Call(context.Background(), map[string]any{"project_root": "/never/compiled"})
	if err == nil {
		t.Error("expected error when no compile_narrative result is cached")
	}
}

func TestQueryNarrativeTool_ListAndLocation(t *testing.T) {
	dir := writeNarrativeProject(t, "# Introduction\n\nHello world.\n\n# Methods {#methods}\n\nMore text.\n")
	cache := mcp.NewDocCache()
	compileTool := NewCompileNarrativeTool(cache)
	if _, err := compileTool.Call(context.Background(), map[string]any{"project_root": dir}); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	queryTool := NewQueryNarrativeTool(cache)

	listResult, err := queryTool.Call(context.Background(), map[string]any{
		"project_root": dir,
		"op":           "list",
		"kind":         "heading",
	})
	if err != nil {
		t.Fatalf("list query failed: %v", err)
	}
	listMap := listResult.(map[string]any)
	if count, _ := listMap["count"].(int); count != 2 {
		t.Errorf("expected 2 headings, got %v", listMap["count"])
	}
	if listMap["_toon"] == "" {
		t.Error("expected non-empty TOON encoding")
	}

	locResult, err := queryTool.Call(context.Background(), map[string]any{
		"project_root": dir,
		"op":           "location",
		"kind":         "heading",
		"label":        "methods",
	})
	if err != nil {
		t.Fatalf("location query failed: %v", err)
	}
	locMap := locResult.(map[string]any)
	loc, _ := locMap["location"].(string)
	if loc == "" {
		t.Fatal("expected non-empty location string")
	}

	pageResult, err := queryTool.Call(context.Background(), map[string]any{
		"project_root": dir,
		"op":           "page",
		"location":     loc,
	})
	if err != nil {
		t.Fatalf("page query failed: %v", err)
	}
	pageMap := pageResult.(map[string]any)
	if page, _ := pageMap["page"].(int); page != 2 {
		t.Errorf("expected methods heading on page 2, got %v", pageMap["page"])
	}
}

func TestQueryNarrativeTool_UnknownOp(t *testing.T) {
	dir := writeNarrativeProject(t, "# Introduction\n\nHello world.\n")
	cache := mcp.NewDocCache()
	compileTool := NewCompileNarrativeTool(cache)
	if _, err := compileTool.Call(context.Background(), map[string]any{"project_root": dir}); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	queryTool := NewQueryNarrativeTool(cache)
	if _, err := queryTool.Call(context.Background(), map[string]any{"project_root": dir, "op": "bogus"}); err == nil {
		t.Error("expected error for unknown op")
	}
}
