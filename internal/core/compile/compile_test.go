package compile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/madstone-tech/loko/internal/adapters/worldfs"
	"github.com/madstone-tech/loko/internal/core/diag"
)

func writeMain(t *testing.T, text string) *worldfs.World {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.md"), []byte(text), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return worldfs.New(dir, "main.md")
}

func TestCompile_SimpleDocument(t *testing.T) {
	w := writeMain(t, "# Introduction\n\nSome opening text.\n\n# Methods\n\nMore text.\n")
	tracer := diag.NewTracer()

	doc, err := Compile(context.Background(), w, tracer)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("Compile() produced %d pages, want 2 (one per level-1 heading)", len(doc.Pages))
	}
}

func TestCompile_PageReferenceResolves(t *testing.T) {
	w := writeMain(t, strings.Join([]string{
		"# Introduction",
		"",
		"See methods on page {{page-of:methods}}.",
		"",
		"# Methods",
		"",
		"Detail here.",
	}, "\n"))
	tracer := diag.NewTracer()

	doc, err := Compile(context.Background(), w, tracer)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	found := false
	for _, page := range doc.Pages {
		for _, item := range page.Frame.Items {
			for _, m := range item.Meta.Elems() {
				if m.Content.Kind == "paragraph" && strings.Contains(m.Content.Text, "page 2") {
					found = true
				}
			}
		}
	}
	if !found {
		t.Fatal("Compile() did not resolve {{page-of:methods}} to page 2")
	}
}

func TestCompile_NoWarningOnConvergence(t *testing.T) {
	w := writeMain(t, "# Hello\n\nWorld.\n")
	tracer := diag.NewTracer()

	if _, err := Compile(context.Background(), w, tracer); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if len(tracer.Warnings()) != 0 {
		t.Fatalf("Warnings() = %v, want none for a document that converges immediately", tracer.Warnings())
	}
}

func TestCompile_MissingMainIsError(t *testing.T) {
	w := worldfs.New(t.TempDir(), "missing.md")
	tracer := diag.NewTracer()
	if _, err := Compile(context.Background(), w, tracer); err == nil {
		t.Fatal("Compile() error = nil, want error for missing main source")
	}
}
