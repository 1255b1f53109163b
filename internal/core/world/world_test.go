package world

import "testing"

func TestBuild_PreludeHasColorsAndAlignment(t *testing.T) {
	lib := Build()
	for _, name := range []string{"black", "white", "red", "blue", "green", "left", "center", "top"} {
		if _, ok := lib.Prelude[name]; !ok {
			t.Errorf("Build() prelude missing %q", name)
		}
	}
}

func TestBuild_ScopeHasCategories(t *testing.T) {
	lib := Build()
	for _, category := range []string{"foundations", "model", "text", "layout", "visualize", "introspection", "loading", "symbols"} {
		if _, ok := lib.Scope[category]; !ok {
			t.Errorf("Build() scope missing category %q", category)
		}
	}
}

func TestFontBook_FontOutOfRange(t *testing.T) {
	book := &FontBook{Fonts: []Font{{Name: "Inter"}}}
	if _, ok := book.Font(1); ok {
		t.Fatal("Font(1) = ok, want false for out-of-range index")
	}
	if f, ok := book.Font(0); !ok || f.Name != "Inter" {
		t.Fatalf("Font(0) = %+v, %v; want Inter, true", f, ok)
	}
}
