package tools

import (
	"context"
	"fmt"

	"github.com/madstone-tech/loko/internal/adapters/worldfs"
	"github.com/madstone-tech/loko/internal/core/compile"
	"github.com/madstone-tech/loko/internal/core/diag"
	"github.com/madstone-tech/loko/internal/core/introspect"
	"github.com/madstone-tech/loko/internal/mcp"
)

// narrativeEntryPoint is the conventional name of a project's introspective
// main document. Kept in sync with cmd.narrativeEntryPoint; duplicated here
// rather than imported since cmd depends on internal/mcp/tools, not the
// other way around.
const narrativeEntryPoint = "main.md"

// CompileNarrativeTool compiles a project's main.md through the layout
// fixpoint and caches the result so query_narrative can answer introspection
// queries against it without recompiling.
type CompileNarrativeTool struct {
	cache *mcp.DocCache
}

// NewCompileNarrativeTool creates a new compile_narrative tool.
func NewCompileNarrativeTool(cache *mcp.DocCache) *CompileNarrativeTool {
	return &CompileNarrativeTool{cache: cache}
}

// Name returns the tool name.
func (t *CompileNarrativeTool) Name() string {
	return "compile_narrative"
}

// Description returns the tool description.
func (t *CompileNarrativeTool) Description() string {
	return "Compile a project's main.md narrative document through the layout fixpoint and report page count and diagnostics"
}

// InputSchema returns the JSON schema for tool inputs.
func (t *CompileNarrativeTool) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"project_root": map[string]any{
				"type":        "string",
				"description": "Root directory of the project (must contain main.md)",
			},
		},
		"required": []string{"project_root"},
	}
}

// Call executes the tool.
func (t *CompileNarrativeTool) Call(ctx context.Context, args map[string]any) (any, error) {
	projectRoot, _ := args["project_root"].(string)
	if projectRoot == "" {
		projectRoot = "."
	}

	w := worldfs.New(projectRoot, narrativeEntryPoint)
	tracer := diag.NewTracer()

	doc, err := compile.Compile(ctx, w, tracer)
	warnings := tracer.Warnings()
	if err != nil {
		t.cache.Invalidate(projectRoot)
		return nil, fmt.Errorf("failed to compile %s: %w", narrativeEntryPoint, err)
	}

	ix := introspect.Build(doc.Pages)
	t.cache.Set(projectRoot, doc, ix, warnings)

	diagnostics := make([]map[string]any, len(warnings))
	for i, w := range warnings {
		diagnostics[i] = map[string]any{
			"severity": string(w.Severity),
			"message":  w.Message,
			"hint":     w.Hint,
		}
	}

	return map[string]any{
		"pages":       len(doc.Pages),
		"diagnostics": diagnostics,
	}, nil
}
