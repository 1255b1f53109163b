package tools

import (
	"context"
	"fmt"

	"github.com/madstone-tech/loko/internal/adapters/encoding"
	"github.com/madstone-tech/loko/internal/core/content"
	"github.com/madstone-tech/loko/internal/core/introspect"
	"github.com/madstone-tech/loko/internal/core/locate"
	"github.com/madstone-tech/loko/internal/core/memo"
	"github.com/madstone-tech/loko/internal/mcp"
)

// QueryNarrativeTool answers positional and counting queries against a
// project's most recently compiled main.md, as indexed by compile_narrative.
// The result map is returned with its TOON encoding added under "_toon".
type QueryNarrativeTool struct {
	cache *mcp.DocCache
	enc   *encoding.Encoder
}

// NewQueryNarrativeTool creates a new query_narrative tool.
func NewQueryNarrativeTool(cache *mcp.DocCache) *QueryNarrativeTool {
	return &QueryNarrativeTool{cache: cache, enc: encoding.NewEncoder()}
}

// Name returns the tool name.
func (t *QueryNarrativeTool) Name() string {
	return "query_narrative"
}

// Description returns the tool description.
func (t *QueryNarrativeTool) Description() string {
	return "Query a compiled main.md narrative document: list elements by kind/label, or resolve an element's page/position/count. Requires compile_narrative to have run first."
}

// InputSchema returns the JSON schema for tool inputs.
func (t *QueryNarrativeTool) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"project_root": map[string]any{
				"type":        "string",
				"description": "Root directory of the project",
			},
			"op": map[string]any{
				"type":        "string",
				"enum":        []string{"list", "location", "page", "count_before", "count_after"},
				"description": "Query operation; defaults to list",
			},
			"kind": map[string]any{
				"type":        "string",
				"description": "Filter by content kind (e.g. heading, paragraph); empty matches any",
			},
			"label": map[string]any{
				"type":        "string",
				"description": "Filter by explicit label; empty matches any",
			},
			"location": map[string]any{
				"type":        "string",
				"description": "A loc:... string from a prior list/location result, required for page/count_before/count_after",
			},
		},
		"required": []string{"project_root"},
	}
}

// Call executes the tool.
func (t *QueryNarrativeTool) Call(ctx context.Context, args map[string]any) (any, error) {
	projectRoot, _ := args["project_root"].(string)
	if projectRoot == "" {
		projectRoot = "."
	}

	entry, ok := t.cache.Get(projectRoot)
	if !ok {
		return nil, fmt.Errorf("no compiled narrative cached for %q; run compile_narrative first", projectRoot)
	}
	ix := entry.Introspect

	op, _ := args["op"].(string)
	if op == "" {
		op = "list"
	}
	kind, _ := args["kind"].(string)
	label, _ := args["label"].(string)
	sel := introspect.Selector{Kind: content.Kind(kind), Label: label}

	// Each call gets its own scratch Constraint: these are one-off
	// interactive queries, not part of a layout iteration that needs to
	// validate assumptions on the next pass.
	c := memo.NewConstraint()

	switch op {
	case "page", "count_before", "count_after":
		locStr, _ := args["location"].(string)
		loc, ok := locate.ParseLocation(locStr)
		if !ok {
			return nil, fmt.Errorf("invalid or missing location %q", locStr)
		}
		switch op {
		case "page":
			page, err := ix.Page(loc, c)
			if err != nil {
				return nil, fmt.Errorf("page: %w", err)
			}
			return t.encode(map[string]any{"page": page})
		case "count_before":
			return t.encode(map[string]any{"count": ix.CountBefore(sel, loc, c)})
		case "count_after":
			return t.encode(map[string]any{"count": ix.CountAfter(sel, loc, c)})
		}
	case "location":
		loc, err := ix.Location(sel, c)
		if err != nil {
			return nil, fmt.Errorf("location: %w", err)
		}
		return t.encode(map[string]any{"location": loc.String()})
	case "list":
		nodes := ix.Query(sel, c)
		items := make([]map[string]any, len(nodes))
		for i, n := range nodes {
			items[i] = map[string]any{
				"kind":  string(n.Kind),
				"label": n.Label,
				"text":  n.Text,
			}
		}
		return t.encode(map[string]any{"elements": items, "count": len(items)})
	}

	return nil, fmt.Errorf("unknown op %q", op)
}

func (t *QueryNarrativeTool) encode(v map[string]any) (any, error) {
	toon, err := t.enc.EncodeTOON(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	v["_toon"] = string(toon)
	return v, nil
}
