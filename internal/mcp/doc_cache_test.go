package mcp

import (
	"sync"
	"testing"

	"github.com/madstone-tech/loko/internal/core/layout"
)

func testDocument() *layout.Document {
	return &layout.Document{Pages: []layout.Page{{}}}
}

// TestDocCacheHitMiss tests cache hit and miss scenarios.
func TestDocCacheHitMiss(t *testing.T) {
	cache := NewDocCache()

	projectRoot := "/test/project"

	// Test cache miss
	if entry, ok := cache.Get(projectRoot); ok {
		t.Error("expected cache miss, got hit")
		if entry != nil {
			t.Error("expected nil entry on miss")
		}
	}

	// Add document to cache
	testDoc := testDocument()
	cache.Set(projectRoot, testDoc, nil, nil)

	// Test cache hit
	if entry, ok := cache.Get(projectRoot); !ok {
		t.Error("expected cache hit, got miss")
	} else if entry.Document != testDoc {
		t.Error("cached document doesn't match original")
	}
}

// TestDocCacheInvalidation tests cache invalidation.
func TestDocCacheInvalidation(t *testing.T) {
	cache := NewDocCache()

	projectRoot := "/test/project"
	testDoc := testDocument()

	cache.Set(projectRoot, testDoc, nil, nil)

	if _, ok := cache.Get(projectRoot); !ok {
		t.Fatal("document should be cached before invalidation")
	}

	cache.Invalidate(projectRoot)

	if _, ok := cache.Get(projectRoot); ok {
		t.Error("document should not be cached after invalidation")
	}

	// Invalidating non-existent entry should not error
	cache.Invalidate("/non/existent")
}

// TestDocCacheConcurrentAccess tests concurrent access with race detector.
func TestDocCacheConcurrentAccess(t *testing.T) {
	cache := NewDocCache()

	projectRoot := "/test/project"

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Set(projectRoot, testDocument(), nil, nil)
		}()
	}

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Get(projectRoot)
		}()
	}

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Invalidate(projectRoot)
		}()
	}

	wg.Wait()

	// No race conditions should occur (verified by -race flag)
}

// TestDocCacheMultipleProjects tests caching multiple projects.
func TestDocCacheMultipleProjects(t *testing.T) {
	cache := NewDocCache()

	project1 := "/test/project1"
	project2 := "/test/project2"

	doc1 := testDocument()
	doc2 := testDocument()

	cache.Set(project1, doc1, nil, nil)
	cache.Set(project2, doc2, nil, nil)

	if e, ok := cache.Get(project1); !ok || e.Document != doc1 {
		t.Error("project1 document not correctly cached")
	}

	if e, ok := cache.Get(project2); !ok || e.Document != doc2 {
		t.Error("project2 document not correctly cached")
	}

	cache.Invalidate(project1)

	if _, ok := cache.Get(project1); ok {
		t.Error("project1 should be invalidated")
	}

	if _, ok := cache.Get(project2); !ok {
		t.Error("project2 should still be cached")
	}
}
