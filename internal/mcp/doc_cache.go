package mcp

import (
	"sync"
	"time"

	"github.com/madstone-tech/loko/internal/core/diag"
	"github.com/madstone-tech/loko/internal/core/introspect"
	"github.com/madstone-tech/loko/internal/core/layout"
)

// DocCache provides thread-safe caching of compiled narrative documents per
// project. It eliminates the need to recompile main.md on every MCP query
// tool call during interactive sessions.
type DocCache struct {
	mu      sync.RWMutex
	entries map[string]*CachedDoc
}

// CachedDoc wraps a compiled document with its introspector and diagnostics.
type CachedDoc struct {
	Document    *layout.Document
	Introspect  *introspect.Introspector
	Diagnostics []diag.SourceDiagnostic
	BuiltAt     time.Time
}

// NewDocCache creates a new document cache.
func NewDocCache() *DocCache {
	return &DocCache{
		entries: make(map[string]*CachedDoc),
	}
}

// Get retrieves a cached document for the given project root.
// Returns the entry and true if found, nil and false otherwise.
func (dc *DocCache) Get(projectRoot string) (*CachedDoc, bool) {
	dc.mu.RLock()
	defer dc.mu.RUnlock()

	if entry, ok := dc.entries[projectRoot]; ok {
		return entry, true
	}
	return nil, false
}

// Set stores a compiled document in the cache for the given project root.
func (dc *DocCache) Set(projectRoot string, doc *layout.Document, ix *introspect.Introspector, diagnostics []diag.SourceDiagnostic) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	dc.entries[projectRoot] = &CachedDoc{
		Document:    doc,
		Introspect:  ix,
		Diagnostics: diagnostics,
		BuiltAt:     time.Now(),
	}
}

// Invalidate removes the cached document for the given project root.
// This should be called when source files change.
func (dc *DocCache) Invalidate(projectRoot string) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	delete(dc.entries, projectRoot)
}
