// Package world defines the host contract the compilation driver consults
// for everything it cannot compute itself: which files exist, what fonts are
// available, what "today" means for a reproducible build, and the global
// scope of built-in definitions every compiled document sees.
//
// Grounded on the small, doc-comment-heavy interfaces this repository's
// adapters satisfy: context.Context-first signatures and an explicit MUST
// contract for implementations, generalized to "resolve the inputs one
// compilation needs" rather than any particular storage backend.
package world

import "time"

// FileID identifies a project file (a Markdown document, a D2 diagram
// source, a font) independent of where World happens to have it stored.
// FileID values are stable for the lifetime of one World, which is itself
// rebuilt fresh per compile() call (see core/compile), so callers never need
// to worry about stale IDs surviving a file rename.
type FileID string

// Source is a parsed project file: content.go's evaluator walks its root
// Node to build the content tree. World treats parsing as an external
// collaborator — Source only carries the already-parsed result plus enough
// identity to re-fetch the raw bytes via File.
type Source struct {
	ID   FileID
	Path string
	Text string
}

// Font is font metadata only — loko's compiler never shapes or rasterizes
// glyphs itself (see SPEC_FULL.md §1 Non-goals); it reports what is
// available so layout can make page-break and sizing decisions, the same
// way the existing PDF/d2 rendering adapters already consult system fonts.
type Font struct {
	Name   string
	Family string
	Bold   bool
	Italic bool
}

// PackageInfo describes a resolvable external package a document can import
// (e.g. a shared template bundle). loko has no package registry of its own
// yet; Packages returns whatever the World implementation's manifest
// declares, which may be empty.
type PackageInfo struct {
	Name    string
	Version string
}

// Library is the global scope every compiled document sees: built-in
// constructors, constants and categories available without an explicit
// import. It is immutable once built — Build runs once per World and its
// result is cached for the World's lifetime, matching §4.1's requirement
// that Library() be cheap on repeat.
//
// Categories mirror the original compiler's module layout (foundations,
// model, text, math, layout, visualize, introspection, loading, symbols);
// Build creates each category as an empty map, and Math is empty too.
type Library struct {
	Scope   map[string]any
	Math    map[string]any
	Prelude map[string]any
}

// Build constructs the global scope: the named categories plus the prelude
// of always-available names (named colors, alignment keywords and text
// directions). The prelude holds string constants only; no constructors or
// functions are registered. Called once per compilation; callers should treat
// the returned Library as read-only.
func Build() *Library {
	lib := &Library{
		Scope:   make(map[string]any),
		Math:    make(map[string]any),
		Prelude: make(map[string]any),
	}
	for _, category := range []string{"foundations", "model", "text", "layout", "visualize", "introspection", "loading", "symbols"} {
		lib.Scope[category] = make(map[string]any)
	}

	lib.Prelude["black"] = "#000000"
	lib.Prelude["white"] = "#ffffff"
	lib.Prelude["red"] = "#ff4136"
	lib.Prelude["blue"] = "#0074d9"
	lib.Prelude["green"] = "#2ecc40"
	lib.Prelude["left"] = "left"
	lib.Prelude["right"] = "right"
	lib.Prelude["center"] = "center"
	lib.Prelude["top"] = "top"
	lib.Prelude["bottom"] = "bottom"
	lib.Prelude["ltr"] = "ltr"
	lib.Prelude["rtl"] = "rtl"

	return lib
}

// FontBook indexes the Fonts a World can hand out by position, mirroring the
// original compiler's font-book abstraction without implementing any actual
// font parsing (out of scope per SPEC_FULL.md §1).
type FontBook struct {
	Fonts []Font
}

// Font returns the font at index, if any.
func (b *FontBook) Font(index int) (Font, bool) {
	if index < 0 || index >= len(b.Fonts) {
		return Font{}, false
	}
	return b.Fonts[index], true
}

// World is the host contract core/compile consults while driving a
// compilation. Implementations MUST make every method cheap to call
// repeatedly within one compilation — core/compile calls World directly
// and does not cache its answers, so the implementation itself has to be
// cheap (e.g. backed by an in-memory cache of already-read files, as
// internal/adapters/worldfs is).
type World interface {
	// Library returns the global scope, built once and reused.
	Library() *Library
	// Book returns the font metadata index.
	Book() *FontBook
	// Main returns the entry-point Source for this compilation.
	Main() (Source, error)
	// Source resolves a FileID to its parsed Source.
	Source(id FileID) (Source, error)
	// File returns the raw bytes behind a FileID, for non-text assets.
	File(id FileID) ([]byte, error)
	// Font returns the font at the given index in the font book.
	Font(index int) (Font, bool)
	// Today returns the date to stamp onto generated output, offset by
	// offsetHours if non-nil (for reproducible builds run in a different
	// timezone than the one the document expects). The bool result is
	// false if the host cannot supply a date (e.g. in a hermetic build
	// sandbox with no wall clock access).
	Today(offsetHours *int) (time.Time, bool)
	// Packages lists the external packages resolvable from this World.
	Packages() []PackageInfo
}
