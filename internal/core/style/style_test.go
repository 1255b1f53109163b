package style

import "testing"

func TestChain_GetWalksOutward(t *testing.T) {
	outer := NewChain(map[string]any{"pageWidth": 210})
	inner := outer.Push(map[string]any{"theme": "dark"})

	if v, ok := inner.Get("theme"); !ok || v != "dark" {
		t.Fatalf("Get(theme) = %v, %v; want dark, true", v, ok)
	}
	if v, ok := inner.Get("pageWidth"); !ok || v != 210 {
		t.Fatalf("Get(pageWidth) = %v, %v; want 210, true", v, ok)
	}
	if _, ok := inner.Get("missing"); ok {
		t.Fatal("Get(missing) unexpectedly found a value")
	}
}

func TestChain_InnerShadowsOuterForDirectLookup(t *testing.T) {
	outer := NewChain(map[string]any{"theme": "light"})
	inner := outer.Push(map[string]any{"theme": "dark"})

	if v, _ := inner.Get("theme"); v != "dark" {
		t.Fatalf("Get(theme) = %v, want dark (inner shadows outer)", v)
	}
	if v, _ := outer.Get("theme"); v != "light" {
		t.Fatal("Push mutated the parent chain")
	}
}

func TestChain_FoldComposesAcrossScopes(t *testing.T) {
	root := NewChain(nil)
	withLink := root.Fold("meta", "link:https://example.com")
	withElem := withLink.Fold("meta", "elem:heading")

	got := withElem.Folded("meta")
	want := []string{"link:https://example.com", "elem:heading"}
	if len(got) != len(want) {
		t.Fatalf("Folded(meta) len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Folded(meta)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
