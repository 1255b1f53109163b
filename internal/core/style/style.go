// Package style implements the style chain layout consults to resolve
// property values: page size, theme, numbering scheme, and the folded Meta
// set (internal/core/meta) that composes across nested scopes.
//
// Grounded on the layered theme resolution in
// internal/adapters/config/theme.go: an inner frame's properties override an
// outer frame's for direct lookups, but a handful of properties (Meta being
// the prototypical one) are *folded* — accumulated with the outer scope
// rather than replaced, so nested annotations compose instead of shadowing.
package style

// Chain is a singly-linked stack of style frames. Inner frames hold a
// lookup-only back-reference to their outer frame; the chain's lifetime is
// bounded by the layout call that built it, never retained afterward.
type Chain struct {
	outer  *Chain
	values map[string]any
	folded map[string][]any
}

// NewChain creates the outermost style chain, seeded with default style
// properties (Library.Build's default styles in SPEC_FULL.md §6).
func NewChain(defaults map[string]any) *Chain {
	return &Chain{values: cloneValues(defaults)}
}

// Push layers a new frame on top of c, returning the child chain. The
// parent c is left untouched so sibling branches of a layout tree can each
// push their own child frame from the same parent.
func (c *Chain) Push(values map[string]any) *Chain {
	return &Chain{outer: c, values: cloneValues(values)}
}

// Get resolves a direct (non-folded) property by walking from the innermost
// frame outward, returning the first value found.
func (c *Chain) Get(key string) (any, bool) {
	for frame := c; frame != nil; frame = frame.outer {
		if v, ok := frame.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Fold returns a new child frame of c that folds value under key; c itself
// is unchanged. Folded on the child composes with (does not replace)
// whatever was folded on outer frames. Meta tagging uses this so
// a Link applied by an outer scope and an Elem marker applied by an inner
// scope both end up attached to the same frame region.
func (c *Chain) Fold(key string, value any) *Chain {
	child := &Chain{outer: c, values: map[string]any{}}
	child.folded = map[string][]any{key: {value}}
	return child
}

// Folded returns every value folded for key across this frame and all outer
// frames, outermost first — the order in which nested metadata annotations
// were layered.
func (c *Chain) Folded(key string) []any {
	if c == nil {
		return nil
	}
	var out []any
	if c.outer != nil {
		out = append(out, c.outer.Folded(key)...)
	}
	out = append(out, c.folded[key]...)
	return out
}

func cloneValues(values map[string]any) map[string]any {
	if values == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
