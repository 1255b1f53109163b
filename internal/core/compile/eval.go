package compile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/madstone-tech/loko/internal/core/content"
	"github.com/madstone-tech/loko/internal/core/introspect"
	"github.com/madstone-tech/loko/internal/core/memo"
)

var (
	headingPattern       = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	explicitLabelPattern = regexp.MustCompile(`\{#([a-zA-Z0-9_-]+)\}\s*$`)
	pageRefPattern       = regexp.MustCompile(`\{\{page-of:([a-zA-Z0-9_-]+)\}\}`)
)

// block is one raw paragraph or heading extracted from source text, before
// Introspector-dependent reference resolution.
type block struct {
	heading bool
	level   int
	label   string
	text    string
}

// parseBlocks splits markdown-ish source text into headings and paragraphs.
// It is a pure function of text, so Compile caches it across layout
// iterations: unchanged source is parsed once.
func parseBlocks(text string) []block {
	var blocks []block
	var para []string

	flush := func() {
		if len(para) == 0 {
			return
		}
		blocks = append(blocks, block{text: strings.Join(para, " ")})
		para = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if m := headingPattern.FindStringSubmatch(trimmed); m != nil {
			flush()
			level := len(m[1])
			headingText := m[2]
			label := ""
			if lm := explicitLabelPattern.FindStringSubmatch(headingText); lm != nil {
				label = lm[1]
				headingText = strings.TrimSpace(explicitLabelPattern.ReplaceAllString(headingText, ""))
			} else {
				label = slugify(headingText)
			}
			blocks = append(blocks, block{heading: true, level: level, label: label, text: headingText})
			continue
		}
		para = append(para, trimmed)
	}
	flush()
	return blocks
}

// slugify derives a heading's implicit label from its text when no explicit
// {#label} is given.
func slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	return s
}

// resolveRefs substitutes {{page-of:label}} placeholders with the page
// number the label sat on in the previous layout attempt. If prevIx is nil
// or the label isn't found yet, the placeholder is left
// as "?" — content differing from a converged attempt's output guarantees
// at least one more iteration runs.
func resolveRefs(text string, prevIx *introspect.Introspector, constraint *memo.Constraint) string {
	if prevIx == nil {
		return pageRefPattern.ReplaceAllString(text, "?")
	}
	return pageRefPattern.ReplaceAllStringFunc(text, func(m string) string {
		label := pageRefPattern.FindStringSubmatch(m)[1]
		loc, err := prevIx.Location(introspect.Selector{Label: label}, constraint)
		if err != nil {
			return "?"
		}
		page, err := prevIx.Page(loc, constraint)
		if err != nil {
			return "?"
		}
		return fmt.Sprintf("%d", page)
	})
}

// evaluate builds the content tree for one layout attempt: the cached,
// pure parseBlocks pass followed by reference resolution against the
// previous attempt's Introspector.
func evaluate(text string, parseCache *memo.Cache, prevIx *introspect.Introspector, constraint *memo.Constraint) *content.Node {
	argHash := memo.HashArg(text)
	var blocks []block
	if cached, ok := parseCache.Get("parseBlocks", argHash, nil); ok {
		blocks = cached.([]block)
	} else {
		blocks = parseBlocks(text)
		parseCache.Put("parseBlocks", argHash, blocks, memo.NewConstraint())
	}

	root := content.New(content.KindSequence)
	for i, b := range blocks {
		var node *content.Node
		if b.heading {
			node = content.New(content.KindHeading).
				WithLabel(b.label).
				WithText(resolveRefs(b.text, prevIx, constraint)).
				WithField("level", fmt.Sprintf("%d", b.level))
		} else {
			node = content.New(content.KindParagraph).
				WithText(resolveRefs(b.text, prevIx, constraint)).
				WithField("index", fmt.Sprintf("%d", i))
		}
		root.Children = append(root.Children, node)
	}
	return root
}
