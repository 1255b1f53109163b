package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/madstone-tech/loko/internal/mcp"
)

func writeNarrativeProject(t *testing.T, text string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, narrativeEntryPoint), []byte(text), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", narrativeEntryPoint, err)
	}
	return dir
}

func TestCompileNarrativeTool_Success(t *testing.T) {
	dir := writeNarrativeProject(t, "# Introduction\n\nHello world.\n\n# Methods {#methods}\n\nMore text.\n")
	cache := mcp.NewDocCache()
	tool := NewCompileNarrativeTool(cache)

	result, err := tool.Call(context.Background(), map[string]any{"project_root": dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resultMap, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected map result, got %T", result)
	}
	pages, _ := resultMap["pages"].(int)
	if pages != 2 {
		t.Errorf("expected 2 pages, got %d", pages)
	}

	if _, ok := cache.Get(dir); !ok {
		t.Error("expected project to be cached after successful compile")
	}
}

func TestCompileNarrativeTool_MissingMainIsError(t *testing.T) {
	dir := t.TempDir()
	cache := mcp.NewDocCache()
	tool := NewCompileNarrativeTool(cache)

	if _, err := tool.Call(context.Background(), map[string]any{"project_root": dir}); err == nil {
		t.Error("expected error when main.md is missing")
	}
}

func TestCompileNarrativeTool_Name(t *testing.T) {
	tool := NewCompileNarrativeTool(mcp.NewDocCache())
	if tool.Name() != "compile_narrative" {
		t.Errorf("unexpected tool name: %q", tool.Name())
	}
	if tool.Description() == "" {
		t.Error("expected non-empty description")
	}
}
