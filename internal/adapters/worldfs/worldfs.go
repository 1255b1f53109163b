// Package worldfs implements core/world.World against the local file
// system: project files under a root directory, plus an optional
// fontbook.toml manifest describing the fonts available for layout.
//
// Grounded on internal/adapters/filesystem/project_repo.go (os/filepath
// based loading, "failed to X: %w" error wrapping) and
// internal/adapters/config/loader.go's TOML-manifest pattern
// (github.com/BurntSushi/toml, DecodeFile into an explicit manifest struct).
package worldfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/madstone-tech/loko/internal/core/world"
)

// fontManifest is the structure of fontbook.toml, if present at the
// project root. Absence is not an error: World.Book() returns an empty
// FontBook and layout proceeds without font-aware sizing decisions.
type fontManifest struct {
	Fonts []fontEntry `toml:"font"`
}

type fontEntry struct {
	Name   string `toml:"name"`
	Family string `toml:"family"`
	Bold   bool   `toml:"bold"`
	Italic bool   `toml:"italic"`
}

// World reads project files relative to Root. It caches every Source and
// File it has already read for the lifetime of one compilation, satisfying
// core/world.World's "cheap to call repeatedly" contract without needing
// the memo substrate to special-case it.
type World struct {
	Root    string
	MainRel string // path to the entry document, relative to Root

	mu      sync.Mutex
	sources map[world.FileID]world.Source
	files   map[world.FileID][]byte
	library *world.Library
	book    *world.FontBook
}

// New constructs a World rooted at root, with mainRel (relative to root) as
// the compilation entry point.
func New(root, mainRel string) *World {
	return &World{
		Root:    root,
		MainRel: mainRel,
		sources: make(map[world.FileID]world.Source),
		files:   make(map[world.FileID][]byte),
	}
}

// Library builds (once) and returns the global scope.
func (w *World) Library() *world.Library {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.library == nil {
		w.library = world.Build()
	}
	return w.library
}

// Book loads (once) fontbook.toml from the project root, if present.
func (w *World) Book() *world.FontBook {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.book != nil {
		return w.book
	}

	book := &world.FontBook{}
	manifestPath := filepath.Join(w.Root, "fontbook.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		var manifest fontManifest
		if _, decodeErr := toml.DecodeFile(manifestPath, &manifest); decodeErr == nil {
			for _, entry := range manifest.Fonts {
				book.Fonts = append(book.Fonts, world.Font{
					Name:   entry.Name,
					Family: entry.Family,
					Bold:   entry.Bold,
					Italic: entry.Italic,
				})
			}
		}
	}
	w.book = book
	return w.book
}

// Main returns the entry-point Source.
func (w *World) Main() (world.Source, error) {
	return w.Source(world.FileID(w.MainRel))
}

// Source reads and returns the parsed Source for id, caching the result.
func (w *World) Source(id world.FileID) (world.Source, error) {
	w.mu.Lock()
	if cached, ok := w.sources[id]; ok {
		w.mu.Unlock()
		return cached, nil
	}
	w.mu.Unlock()

	path := filepath.Join(w.Root, string(id))
	content, err := os.ReadFile(path)
	if err != nil {
		return world.Source{}, fmt.Errorf("failed to read source %s: %w", id, err)
	}

	src := world.Source{ID: id, Path: path, Text: string(content)}
	w.mu.Lock()
	w.sources[id] = src
	w.mu.Unlock()
	return src, nil
}

// File reads and returns the raw bytes behind id, caching the result.
func (w *World) File(id world.FileID) ([]byte, error) {
	w.mu.Lock()
	if cached, ok := w.files[id]; ok {
		w.mu.Unlock()
		return cached, nil
	}
	w.mu.Unlock()

	path := filepath.Join(w.Root, string(id))
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", id, err)
	}

	w.mu.Lock()
	w.files[id] = content
	w.mu.Unlock()
	return content, nil
}

// Font returns the font at index from the font book.
func (w *World) Font(index int) (world.Font, bool) {
	return w.Book().Font(index)
}

// Today returns the current time, optionally offset by offsetHours. The
// local file system always has a wall clock, so the bool result is always
// true.
func (w *World) Today(offsetHours *int) (time.Time, bool) {
	now := time.Now().UTC()
	if offsetHours != nil {
		now = now.Add(time.Duration(*offsetHours) * time.Hour)
	}
	return now, true
}

// Packages returns no packages: loko has no external package registry yet.
func (w *World) Packages() []world.PackageInfo {
	return nil
}
