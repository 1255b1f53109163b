package layout_test

import (
	"testing"

	"github.com/madstone-tech/loko/internal/core/content"
	"github.com/madstone-tech/loko/internal/core/introspect"
	"github.com/madstone-tech/loko/internal/core/layout"
	"github.com/madstone-tech/loko/internal/core/locate"
	"github.com/madstone-tech/loko/internal/core/meta"
)

// TestHiddenElement_CountsDuringIterationButStrippedFromFinalDocument exercises
// the decision recorded in SPEC_FULL.md §9: a Hide-tagged element still
// occupies its page/position slot and is visible to the Introspector built
// during a layout iteration (so a counter that counts it is stable across
// iterations), but is absent from the Document StripHidden ultimately
// returns to the caller.
func TestHiddenElement_CountsDuringIterationButStrippedFromFinalDocument(t *testing.T) {
	loc := locate.NewLocator()
	arabic := "arabic"

	visible := content.New(content.KindHeading).WithLabel("intro")
	hidden := content.New(content.KindHeading).WithLabel("draft-note")
	after := content.New(content.KindHeading).WithLabel("methods")

	hiddenLoc := loc.Fresh(2)
	pages := []layout.Page{
		{Frame: layout.Frame{Items: []layout.Item{
			{
				Position: layout.Point{X: 0, Y: 0},
				Location: loc.Fresh(1),
				Meta:     meta.Set{meta.PageNumbering{Scheme: &arabic}, meta.Elem{Content: visible}},
			},
			{
				Position: layout.Point{X: 0, Y: 10},
				Location: hiddenLoc,
				Meta:     meta.Set{meta.Hide{}, meta.Elem{Content: hidden}},
			},
			{
				Position: layout.Point{X: 0, Y: 20},
				Location: loc.Fresh(3),
				Meta:     meta.Set{meta.Elem{Content: after}},
			},
		}}},
	}

	ix := introspect.Build(pages)

	// The hidden heading is still indexed: Location/Page resolve, and it is
	// counted by CountBefore against an element that follows it.
	hLoc, err := ix.Location(introspect.Selector{Kind: content.KindHeading, Label: "draft-note"}, nil)
	if err != nil {
		t.Fatalf("Location(draft-note) = %v, want a resolved location", err)
	}
	if hLoc != hiddenLoc {
		t.Fatalf("Location(draft-note) = %v, want %v", hLoc, hiddenLoc)
	}

	afterLoc, err := ix.Location(introspect.Selector{Kind: content.KindHeading, Label: "methods"}, nil)
	if err != nil {
		t.Fatalf("Location(methods) = %v", err)
	}

	count := ix.CountBefore(introspect.Selector{Kind: content.KindHeading}, afterLoc, nil)
	if count != 2 {
		t.Fatalf("CountBefore(methods) = %d, want 2 (intro + hidden draft-note)", count)
	}

	page, err := ix.Page(hiddenLoc, nil)
	if err != nil {
		t.Fatalf("Page(hidden) = %v", err)
	}
	if page != 1 {
		t.Fatalf("Page(hidden) = %d, want 1", page)
	}

	// Finalizing the document strips the Hide-tagged item from its Frame...
	doc := &layout.Document{Pages: pages}
	final := doc.StripHidden()
	if len(final.Pages[0].Frame.Items) != 2 {
		t.Fatalf("StripHidden left %d items, want 2", len(final.Pages[0].Frame.Items))
	}
	for _, item := range final.Pages[0].Frame.Items {
		if item.Location == hiddenLoc {
			t.Fatal("StripHidden did not remove the hidden item")
		}
	}

	// ...but an Introspector built from the stripped document no longer sees
	// it: a fresh count from the next iteration's (already-stripped) source
	// would differ, which is exactly why Compile strips only once, at the
	// very end, rather than before every iteration's Introspector.Build.
	strippedIx := introspect.Build(final.Pages)
	strippedCount := strippedIx.CountBefore(introspect.Selector{Kind: content.KindHeading}, afterLoc, nil)
	if strippedCount != 1 {
		t.Fatalf("CountBefore(methods) on stripped document = %d, want 1 (intro only)", strippedCount)
	}
}
