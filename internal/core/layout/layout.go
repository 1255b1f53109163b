// Package layout defines the laid-out output of one layout attempt: a
// Document is a sequence of Pages, each Page carries a Frame of positioned
// items (including meta markers with absolute positions) the Introspector
// later indexes.
//
// Grounded on entities.Diagram's DiagramPath positioning fields and the
// teacher's SiteBuilder port's page-per-output-file model, generalized from
// "one page per rendered HTML file" to "one page per overflow or level-1
// heading" in a narrative document.
package layout

import (
	"sort"

	"github.com/madstone-tech/loko/internal/core/locate"
	"github.com/madstone-tech/loko/internal/core/meta"
)

// Point is an absolute (x, y) position on a page, in the layout engine's own
// units (the core never interprets the unit, only orders and compares it).
type Point struct {
	X, Y float64
}

// Item is one positioned thing in a Frame: either visible content the
// layout engine placed, or an invisible meta marker produced alongside it.
type Item struct {
	Position Point
	Location locate.Location
	Meta     meta.Set
}

// Frame holds every Item placed on one page, in the order the layout engine
// produced them (not necessarily reading order — Introspector.Build
// resorts by (page, y, x, location) to get reading order).
type Frame struct {
	Items []Item
}

// Page is one page of the compiled Document.
type Page struct {
	Frame Frame
}

// Document is the result of one layout attempt: an ordered sequence of
// Pages. The document compile() ultimately returns to the caller has every
// meta.Hide item stripped from its Frames (SPEC_FULL.md §9).
type Document struct {
	Pages []Page
}

// StripHidden returns a copy of d with every Hide-tagged Item removed from
// every Frame. It does not mutate d, so an Introspector already built from
// d's unstripped Frames remains valid for the remainder of the layout
// iteration that produced it.
func (d *Document) StripHidden() *Document {
	out := &Document{Pages: make([]Page, len(d.Pages))}
	for i, page := range d.Pages {
		var items []Item
		for _, item := range page.Frame.Items {
			if item.Meta.HasHide() {
				continue
			}
			items = append(items, item)
		}
		out.Pages[i] = Page{Frame: Frame{Items: items}}
	}
	return out
}

// Located pairs a Frame Item with the index of the page it sits on.
type Located struct {
	Page int
	Item Item
}

// SortReadingOrder returns the Items of every page sorted into document
// (reading) order: (page index, y, x) with a stable tie-break on Location.
// This is the canonical ordering Introspector.Query results and
// Introspector's by-kind index are built from.
func SortReadingOrder(pages []Page) []Located {
	var entries []Located
	for pageIndex, page := range pages {
		for _, item := range page.Frame.Items {
			entries = append(entries, Located{Page: pageIndex, Item: item})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Item.Position.Y != b.Item.Position.Y {
			return a.Item.Position.Y < b.Item.Position.Y
		}
		if a.Item.Position.X != b.Item.Position.X {
			return a.Item.Position.X < b.Item.Position.X
		}
		return locationLess(a.Item.Location, b.Item.Location)
	})
	return entries
}

// locationLess provides the stable tie-break SortReadingOrder needs when two
// items share an exact (page, y, x) position. Locations have no public
// ordinal, so the comparison goes through their string form, which is still
// deterministic and stable across layout iterations for unchanged content.
func locationLess(a, b locate.Location) bool {
	return a != b && a.String() < b.String()
}
