package worldfs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/madstone-tech/loko/internal/core/world"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestWorld_MainAndSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.md", "# Hello\n")

	w := New(dir, "main.md")
	src, err := w.Main()
	if err != nil {
		t.Fatalf("Main() error = %v", err)
	}
	if src.Text != "# Hello\n" {
		t.Fatalf("Main().Text = %q", src.Text)
	}
}

func TestWorld_SourceCaching(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "original")

	w := New(dir, "a.md")
	first, err := w.Source(world.FileID("a.md"))
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}

	writeFile(t, dir, "a.md", "changed")
	second, err := w.Source(world.FileID("a.md"))
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}
	if first.Text != second.Text {
		t.Fatalf("Source() was not cached: first=%q second=%q", first.Text, second.Text)
	}
}

func TestWorld_SourceMissing(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, "missing.md")
	if _, err := w.Main(); err == nil {
		t.Fatal("Main() error = nil, want error for missing file")
	}
}

func TestWorld_BookFromManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fontbook.toml", "[[font]]\nname = \"Inter Regular\"\nfamily = \"Inter\"\n")

	w := New(dir, "main.md")
	book := w.Book()
	if len(book.Fonts) != 1 || book.Fonts[0].Family != "Inter" {
		t.Fatalf("Book() = %+v, want one Inter font", book.Fonts)
	}
}

func TestWorld_BookMissingManifestIsEmpty(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, "main.md")
	book := w.Book()
	if len(book.Fonts) != 0 {
		t.Fatalf("Book() = %+v, want empty font book", book.Fonts)
	}
}

func TestWorld_Today(t *testing.T) {
	w := New(t.TempDir(), "main.md")
	now, ok := w.Today(nil)
	if !ok || now.IsZero() {
		t.Fatalf("Today(nil) = %v, %v", now, ok)
	}

	offset := 5
	offsetted, ok := w.Today(&offset)
	if !ok || !offsetted.After(now.Add(-time.Minute)) {
		t.Fatalf("Today(&5) = %v, want roughly now+5h", offsetted)
	}
}
