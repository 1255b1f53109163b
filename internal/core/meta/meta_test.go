package meta

import (
	"testing"

	"github.com/madstone-tech/loko/internal/core/content"
)

func TestSet_HasHide(t *testing.T) {
	withHide := Set{Link{Destination: "https://example.com"}, Hide{}}
	if !withHide.HasHide() {
		t.Fatal("HasHide() = false, want true")
	}

	withoutHide := Set{Link{Destination: "https://example.com"}}
	if withoutHide.HasHide() {
		t.Fatal("HasHide() = true, want false")
	}
}

func TestSet_Elems(t *testing.T) {
	node := content.New(content.KindHeading).WithText("Payment System")
	set := Set{
		Link{Destination: "https://example.com"},
		Elem{Content: node},
		Hide{},
		Elem{Content: node},
	}

	elems := set.Elems()
	if len(elems) != 2 {
		t.Fatalf("Elems() len = %d, want 2", len(elems))
	}
	if elems[0].Content != node || elems[1].Content != node {
		t.Fatal("Elems() did not preserve the underlying content node")
	}
}
