// Package introspect indexes the metadata embedded in a laid-out Document
// and answers positional/count queries against it, recording every answer
// into the active internal/core/memo.Constraint so layout can validate,
// after the next attempt, whether the answers it assumed still hold.
//
// Grounded on the build-once, read-many graph index shape used elsewhere in
// this codebase: indices keyed by qualified ID, documented as immutable
// after construction and safe for concurrent reads — exactly the contract an
// Introspector needs, since it is rebuilt from scratch every layout
// iteration and never mutated afterward.
package introspect

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/madstone-tech/loko/internal/core/content"
	"github.com/madstone-tech/loko/internal/core/layout"
	"github.com/madstone-tech/loko/internal/core/locate"
	"github.com/madstone-tech/loko/internal/core/memo"
	"github.com/madstone-tech/loko/internal/core/meta"
)

// ErrNotFound is returned when a selector matches no element.
var ErrNotFound = errors.New("introspect: no matching element")

// ErrAmbiguous is returned when Location is asked for a selector matching
// more than one element.
var ErrAmbiguous = errors.New("introspect: selector matches more than one element")

// Selector is a predicate over element kind, explicit label, and/or a
// Location range. The zero Selector matches every located element.
//
// Grounded on the kind/label/pattern filter shape used for element search
// elsewhere in this codebase, generalized to "select located content
// elements" instead of any one entity kind.
type Selector struct {
	Kind  content.Kind // empty matches any kind
	Label string       // empty matches any label
	// Before and After restrict matches to elements strictly before/after
	// a given Location in reading order, implementing the by-range half of
	// selector semantics and the count(selector) before/after query.
	Before *locate.Location
	After  *locate.Location
}

func (s Selector) matches(le located) bool {
	if s.Kind != "" && le.kind != s.Kind {
		return false
	}
	if s.Label != "" && le.label != s.Label {
		return false
	}
	return true
}

// constraint keys are "op|kind|label|extra"; op and extra never contain the
// "|" separator, so splitting on it round-trips exactly.
func (s Selector) key(op, extra string) string {
	return strings.Join([]string{op, string(s.Kind), s.Label, extra}, "|")
}

func parseKey(key string) (op, kind, label, extra string, ok bool) {
	parts := strings.SplitN(key, "|", 4)
	if len(parts) != 4 {
		return "", "", "", "", false
	}
	return parts[0], parts[1], parts[2], parts[3], true
}

// located is one indexed element: a Meta::Elem marker plus its position.
type located struct {
	loc       locate.Location
	page      int
	pos       layout.Point
	content   *content.Node
	kind      content.Kind
	label     string
	numbering string
	pageLabel string
}

// Introspector answers queries against a finalized (or in-progress, for the
// very first layout attempt — see SPEC_FULL.md §9) layout attempt's frames.
// It is built fresh per iteration and never mutated after Build returns.
type Introspector struct {
	order   []located // reading order
	byLoc   map[locate.Location]located
	byKind  map[content.Kind][]located // each slice already in reading order
	byLabel map[string]located
}

// Build walks every Frame of pages in page order, harvesting Meta::Elem
// markers (and, incidentally, page-numbering/page-label markers attached to
// the same position) into an Introspector. A Meta::PdfPageLabel marker sets
// the label PageLabel reports for the elements that follow it; Meta::Link
// markers are not recorded.
func Build(pages []layout.Page) *Introspector {
	ix := &Introspector{
		byLoc:   make(map[locate.Location]located),
		byKind:  make(map[content.Kind][]located),
		byLabel: make(map[string]located),
	}

	sorted := layout.SortReadingOrder(pages)
	currentNumbering := ""
	currentPageLabel := ""

	for _, entry := range sorted {
		for _, m := range entry.Item.Meta {
			switch v := m.(type) {
			case meta.PageNumbering:
				if v.Scheme != nil {
					currentNumbering = *v.Scheme
				} else {
					currentNumbering = ""
				}
			case meta.PdfPageLabel:
				currentPageLabel = v.Label
			}
		}

		for _, elem := range entry.Item.Meta.Elems() {
			le := located{
				loc:       entry.Item.Location,
				page:      entry.Page,
				pos:       entry.Item.Position,
				content:   elem.Content,
				numbering: currentNumbering,
				pageLabel: currentPageLabel,
			}
			if elem.Content != nil {
				le.kind = elem.Content.Kind
				le.label = elem.Content.Label
			}
			ix.order = append(ix.order, le)
			ix.byLoc[le.loc] = le
			ix.byKind[le.kind] = append(ix.byKind[le.kind], le)
			if le.label != "" {
				ix.byLabel[le.label] = le
			}
		}
	}

	return ix
}

// record appends (key, hash-of-answer) to c, if c is non-nil.
func record(c *memo.Constraint, key string, answer any) {
	if c == nil {
		return
	}
	c.Record(key, memo.HashArg(answer))
}

// --- query methods (each records into the active constraint) ---

// Location returns the Location of the unique element matching sel.
func (ix *Introspector) Location(sel Selector, c *memo.Constraint) (locate.Location, error) {
	answer := ix.locationAnswer(sel)
	record(c, sel.key("location", ""), answer)
	switch answer {
	case "not-found":
		return locate.Detached, fmt.Errorf("%w: %+v", ErrNotFound, sel)
	case "ambiguous":
		return locate.Detached, fmt.Errorf("%w: %+v", ErrAmbiguous, sel)
	default:
		loc, _ := locate.ParseLocation(answer)
		return loc, nil
	}
}

// Page returns the 1-based page index the given Location sits on.
func (ix *Introspector) Page(loc locate.Location, c *memo.Constraint) (int, error) {
	page, ok := ix.pageAnswer(loc)
	record(c, pageKey(loc), page)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, loc.String())
	}
	return page, nil
}

// Position returns the page index and (x, y) point for loc.
func (ix *Introspector) Position(loc locate.Location, c *memo.Constraint) (int, layout.Point, error) {
	le, ok := ix.byLoc[loc]
	record(c, positionKey(loc), le.pos)
	if !ok {
		return 0, layout.Point{}, fmt.Errorf("%w: %s", ErrNotFound, loc.String())
	}
	return le.page + 1, le.pos, nil
}

// PageNumbering returns the numbering scheme active at loc.
func (ix *Introspector) PageNumbering(loc locate.Location, c *memo.Constraint) (string, error) {
	le, ok := ix.byLoc[loc]
	record(c, numberingKey(loc), le.numbering)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, loc.String())
	}
	return le.numbering, nil
}

// PageLabel returns the PDF page label active at loc.
func (ix *Introspector) PageLabel(loc locate.Location, c *memo.Constraint) (string, error) {
	le, ok := ix.byLoc[loc]
	record(c, pageLabelKey(loc), le.pageLabel)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, loc.String())
	}
	return le.pageLabel, nil
}

// Query returns every located element matching sel, in reading order.
func (ix *Introspector) Query(sel Selector, c *memo.Constraint) []*content.Node {
	matches := ix.match(sel)
	out := make([]*content.Node, len(matches))
	locs := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.content
		locs[i] = m.loc.String()
	}
	record(c, sel.key("query", ""), locs)
	return out
}

// CountBefore returns how many elements matching sel sit strictly before
// loc in reading order.
func (ix *Introspector) CountBefore(sel Selector, loc locate.Location, c *memo.Constraint) int {
	count := ix.countAnswer(sel, loc, true)
	record(c, sel.key("countBefore", loc.String()), count)
	return count
}

// CountAfter returns how many elements matching sel sit strictly after loc
// in reading order.
func (ix *Introspector) CountAfter(sel Selector, loc locate.Location, c *memo.Constraint) int {
	count := ix.countAnswer(sel, loc, false)
	record(c, sel.key("countAfter", loc.String()), count)
	return count
}

// --- pure answer computations, shared between the query methods above and
// Answer's replay path below, so both always hash the same representation.

func (ix *Introspector) locationAnswer(sel Selector) string {
	matches := ix.match(sel)
	switch len(matches) {
	case 0:
		return "not-found"
	case 1:
		return matches[0].loc.String()
	default:
		return "ambiguous"
	}
}

func (ix *Introspector) pageAnswer(loc locate.Location) (int, bool) {
	le, ok := ix.byLoc[loc]
	if !ok {
		return 0, false
	}
	return le.page + 1, true
}

func (ix *Introspector) countAnswer(sel Selector, loc locate.Location, before bool) int {
	pivot := ix.indexOf(loc)
	count := 0
	if pivot < 0 {
		return 0
	}
	for i, le := range ix.order {
		if before && i >= pivot {
			break
		}
		if !before && i <= pivot {
			continue
		}
		if sel.matches(le) {
			count++
		}
	}
	return count
}

// locKey builds a key in the same "op|kind|label|extra" shape Selector.key
// uses, leaving kind/label empty since these queries take a bare Location.
func locKey(op string, loc locate.Location) string {
	return strings.Join([]string{op, "", "", loc.String()}, "|")
}

func pageKey(loc locate.Location) string      { return locKey("page", loc) }
func positionKey(loc locate.Location) string  { return locKey("position", loc) }
func numberingKey(loc locate.Location) string { return locKey("pageNumbering", loc) }
func pageLabelKey(loc locate.Location) string { return locKey("pageLabel", loc) }

// match returns every indexed element satisfying sel, in reading order.
func (ix *Introspector) match(sel Selector) []located {
	var candidates []located
	if sel.Kind != "" {
		candidates = ix.byKind[sel.Kind]
	} else {
		candidates = ix.order
	}

	var out []located
	for _, le := range candidates {
		if !sel.matches(le) {
			continue
		}
		if sel.Before != nil && !ix.before(le.loc, *sel.Before) {
			continue
		}
		if sel.After != nil && !ix.after(le.loc, *sel.After) {
			continue
		}
		out = append(out, le)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return ix.indexOf(out[i].loc) < ix.indexOf(out[j].loc)
	})
	return out
}

func (ix *Introspector) indexOf(loc locate.Location) int {
	for i, le := range ix.order {
		if le.loc == loc {
			return i
		}
	}
	return -1
}

func (ix *Introspector) before(a, b locate.Location) bool {
	ai, bi := ix.indexOf(a), ix.indexOf(b)
	return ai >= 0 && bi >= 0 && ai < bi
}

func (ix *Introspector) after(a, b locate.Location) bool {
	ai, bi := ix.indexOf(a), ix.indexOf(b)
	return ai >= 0 && bi >= 0 && ai > bi
}

// Answer implements memo.Queryable: it recomputes the answer hash for a
// previously-recorded constraint key by re-running the same query against
// this (freshly built) Introspector. Because every key this package emits
// is "op|kind|label|extra", replay only needs to dispatch on op and rebuild
// the Selector/Location the original call used — it never needs to inspect
// memo's internals, and memo never needs to import introspect.
func (ix *Introspector) Answer(key string) (uint64, bool) {
	op, kind, label, extra, ok := parseKey(key)
	if !ok {
		return 0, false
	}

	switch op {
	case "location", "query":
		sel := Selector{Kind: content.Kind(kind), Label: label}
		if op == "location" {
			return memo.HashArg(ix.locationAnswer(sel)), true
		}
		matches := ix.match(sel)
		locs := make([]string, len(matches))
		for i, m := range matches {
			locs[i] = m.loc.String()
		}
		return memo.HashArg(locs), true
	case "page", "position", "pageNumbering", "pageLabel":
		loc, ok := locate.ParseLocation(extra)
		if !ok {
			return 0, false
		}
		le, found := ix.byLoc[loc]
		switch op {
		case "page":
			if !found {
				return memo.HashArg(0), true
			}
			return memo.HashArg(le.page + 1), true
		case "position":
			return memo.HashArg(le.pos), true
		case "pageNumbering":
			return memo.HashArg(le.numbering), true
		case "pageLabel":
			return memo.HashArg(le.pageLabel), true
		}
	case "countBefore", "countAfter":
		loc, ok := locate.ParseLocation(extra)
		if !ok {
			return 0, false
		}
		sel := Selector{Kind: content.Kind(kind), Label: label}
		count := ix.countAnswer(sel, loc, op == "countBefore")
		return memo.HashArg(count), true
	}
	return 0, false
}
