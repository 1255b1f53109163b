// Package content defines the hierarchical, post-evaluation document tree
// the evaluator collaborator produces and the layout engine consumes.
//
// A Node tree is reference-counted only in the sense that Go's garbage
// collector already gives pointers for free; Content is treated as
// immutable once built; structurally equal trees must hash equal so the
// memo substrate (internal/core/memo) can use content hashes as cache keys.
package content

import (
	"fmt"
	"sort"

	"github.com/madstone-tech/loko/internal/core/locate"
)

// Kind names the sort of element a Node represents. The core only needs to
// recognize a handful of kinds to drive introspection and layout fixpoints;
// most element semantics belong to the (out of scope) element definitions
// collaborator.
type Kind string

const (
	// KindSequence groups children with no element identity of its own.
	KindSequence Kind = "sequence"
	// KindHeading is a section heading; headings are order-dependent.
	KindHeading Kind = "heading"
	// KindParagraph is an order-dependent block of text.
	KindParagraph Kind = "paragraph"
	// KindSystem, KindContainer, KindComponent mirror the C4 entities this
	// document language ultimately describes (systems/containers/components
	// are order-independent among siblings of the same kind).
	KindSystem    Kind = "system"
	KindContainer Kind = "container"
	KindComponent Kind = "component"
	// KindMeta hosts invisible metadata (see internal/core/meta) and
	// guarantees a frame point is produced even for an otherwise empty
	// styled region, so its Location is discoverable.
	KindMeta Kind = "meta"
)

// orderIndependent lists kinds whose relative order among identically-kinded
// siblings carries no document meaning (e.g. two components of the same
// container may be declared in any order without changing the compiled
// output's semantics, though their reading-order Location sequence is still
// deterministic by traversal order).
var orderIndependent = map[Kind]bool{
	KindSystem:    true,
	KindContainer: true,
	KindComponent: true,
}

// OrderIndependent reports whether siblings of this kind are permitted to be
// reordered without changing document semantics.
func (k Kind) OrderIndependent() bool {
	return orderIndependent[k]
}

// Node is one element instance in the content tree.
type Node struct {
	Kind     Kind
	Label    string // optional explicit label, used by Meta::Elem-style selectors
	Text     string // leaf text payload, if any
	Fields   map[string]string
	Children []*Node
}

// New constructs a leaf or branch Node.
func New(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// WithLabel attaches an explicit label and returns the same Node for
// chaining, matching the builder style entities.NewSystem/NewContainer use.
func (n *Node) WithLabel(label string) *Node {
	n.Label = label
	return n
}

// WithText sets the leaf text payload.
func (n *Node) WithText(text string) *Node {
	n.Text = text
	return n
}

// WithField sets a single metadata field (e.g. "technology", "description").
func (n *Node) WithField(key, value string) *Node {
	if n.Fields == nil {
		n.Fields = make(map[string]string)
	}
	n.Fields[key] = value
	return n
}

// PathKey computes the locate.PathKey for the traversal path from the root
// down to this node, given the sequence of (kind, siblingIndex) segments an
// evaluator/layout walk accumulates. It is a thin wrapper so callers don't
// need to import both packages to compute a stable identity.
func PathKey(path []string) uint64 {
	return locate.PathKey(path...)
}

// Hash returns a deterministic structural hash of the subtree rooted at n.
// Equal trees hash equal regardless of map iteration order; unequal trees
// hash equal only with the (accepted, vanishingly unlikely) risk any hash
// function carries.
func (n *Node) Hash() uint64 {
	if n == nil {
		return 0
	}
	segments := []string{string(n.Kind), n.Label, n.Text}
	keys := make([]string, 0, len(n.Fields))
	for k := range n.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		segments = append(segments, k, n.Fields[k])
	}
	for _, c := range n.Children {
		segments = append(segments, fmt.Sprintf("%x", c.Hash()))
	}
	return locate.PathKey(segments...)
}

// Equal reports whether two subtrees are structurally identical.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.Hash() == other.Hash()
}

// Walk visits n and every descendant in reading (depth-first, pre-order)
// order, calling visit with the node and the path segments leading to it.
// This is the traversal order Locations, page/position ordering, and query
// results are all derived from.
func Walk(n *Node, visit func(node *Node, path []string)) {
	walk(n, nil, visit)
}

func walk(n *Node, path []string, visit func(node *Node, path []string)) {
	if n == nil {
		return
	}
	visit(n, path)
	for i, child := range n.Children {
		childPath := append(append([]string{}, path...), string(child.Kind), fmt.Sprintf("%d", i))
		walk(child, childPath, visit)
	}
}
