package compile

import (
	"strconv"

	"github.com/madstone-tech/loko/internal/core/content"
	"github.com/madstone-tech/loko/internal/core/layout"
	"github.com/madstone-tech/loko/internal/core/locate"
	"github.com/madstone-tech/loko/internal/core/meta"
)

const (
	lineHeight = 14.0
	pageHeight = 700.0
)

// paginate lays out a flat sequence of top-level content nodes into pages,
// breaking to a new page at each level-1 heading (after the first) or once
// the accumulated height would overflow pageHeight. Every node gets a fresh
// Location from locator and a Meta::Elem marker so it is discoverable by
// the Introspector built from the resulting Document.
//
// Grounded on entities.Diagram's DiagramPath positioning fields and the
// teacher's SiteBuilder port's page-per-output-file model, generalized from
// "one page per rendered HTML file" to "one page per overflow or level-1
// heading".
func paginate(root *content.Node, locator *locate.Locator) *layout.Document {
	doc := &layout.Document{Pages: []layout.Page{{}}}
	pageIndex := 0
	y := 0.0

	for i, node := range root.Children {
		level := node.Fields["level"]
		isTopHeading := node.Kind == content.KindHeading && level == "1"

		if isTopHeading && i > 0 {
			doc.Pages = append(doc.Pages, layout.Page{})
			pageIndex++
			y = 0
		}
		if y+lineHeight > pageHeight {
			doc.Pages = append(doc.Pages, layout.Page{})
			pageIndex++
			y = 0
		}

		pathKey := content.PathKey([]string{string(node.Kind), node.Label, strconv.Itoa(i)})
		loc := locator.Fresh(pathKey)

		ms := meta.Set{meta.Elem{Content: node}}
		if isTopHeading {
			scheme := "arabic"
			ms = append(ms, meta.PageNumbering{Scheme: &scheme})
		}

		doc.Pages[pageIndex].Frame.Items = append(doc.Pages[pageIndex].Frame.Items, layout.Item{
			Position: layout.Point{X: 0, Y: y},
			Location: loc,
			Meta:     ms,
		})
		y += lineHeight
	}
	return doc
}
