// Package meta defines the invisible annotations layout attaches to frame
// regions for post-layout processing: hyperlinks, element markers that make
// a Location discoverable, page numbering and PDF page labels, and
// hide-markers stripped during finalization.
//
// Grounded on the Meta enum in the original Typst source
// (introspection/mod.rs), adapted to Go as a sealed interface + type switch
// over a closed set of variants.
package meta

import "github.com/madstone-tech/loko/internal/core/content"

// Meta is implemented by every annotation variant. The set is closed: new
// variants are added here, not by external packages.
type Meta interface {
	isMeta()
}

// Link is an internal or external hyperlink target.
type Link struct {
	// Destination is either an absolute URL or a content.Node Label this
	// link points at (an internal cross-reference).
	Destination string
}

func (Link) isMeta() {}

// Elem marks an identifiable element at this frame position. A dedicated
// invisible element kind (content.KindMeta) ensures a frame point — and
// therefore a discoverable Location — is produced even for an otherwise
// empty styled region.
type Elem struct {
	Content *content.Node
}

func (Elem) isMeta() {}

// PageNumbering informs the current page's numbering scheme. A nil Scheme
// means numbering is suppressed for this page.
type PageNumbering struct {
	Scheme *string
}

func (PageNumbering) isMeta() {}

// PdfPageLabel carries a PDF-specific page label, independent of the
// numbering scheme used for on-page rendering.
type PdfPageLabel struct {
	Label string
}

func (PdfPageLabel) isMeta() {}

// Hide marks content that should not appear in the output. Hide regions are
// stripped from the Document returned by compile(), but — per the decision
// recorded in SPEC_FULL.md §9 — remain present in every intermediate
// Introspector built during the layout fixpoint, so counters and page
// numbering that observe hidden content stay stable across iterations.
type Hide struct{}

func (Hide) isMeta() {}

// Set is the folded collection of Meta markers attached to one style scope,
// accumulated (not replaced) as nested scopes layer their own markers —
// see internal/core/style.Chain.Fold.
type Set []Meta

// HasHide reports whether the set contains a Hide marker.
func (s Set) HasHide() bool {
	for _, m := range s {
		if _, ok := m.(Hide); ok {
			return true
		}
	}
	return false
}

// Elems returns every Elem marker in the set, in order.
func (s Set) Elems() []Elem {
	var out []Elem
	for _, m := range s {
		if e, ok := m.(Elem); ok {
			out = append(out, e)
		}
	}
	return out
}
