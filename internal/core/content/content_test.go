package content

import "testing"

func TestNode_HashEqualForEqualTrees(t *testing.T) {
	a := New(KindSequence, New(KindHeading).WithText("Payment System"), New(KindParagraph).WithText("intro"))
	b := New(KindSequence, New(KindHeading).WithText("Payment System"), New(KindParagraph).WithText("intro"))

	if a.Hash() != b.Hash() {
		t.Fatalf("structurally equal trees hashed differently: %d != %d", a.Hash(), b.Hash())
	}
	if !a.Equal(b) {
		t.Fatal("Equal() = false for structurally equal trees")
	}
}

func TestNode_HashDiffersForDifferentTrees(t *testing.T) {
	a := New(KindSequence, New(KindHeading).WithText("Payment System"))
	b := New(KindSequence, New(KindHeading).WithText("Order System"))

	if a.Hash() == b.Hash() {
		t.Fatal("structurally different trees hashed the same")
	}
}

func TestNode_HashIndependentOfFieldInsertionOrder(t *testing.T) {
	a := New(KindComponent).WithField("technology", "Go").WithField("owner", "payments-team")
	b := New(KindComponent).WithField("owner", "payments-team").WithField("technology", "Go")

	if a.Hash() != b.Hash() {
		t.Fatal("Hash() depends on map field insertion order")
	}
}

func TestWalk_ReadingOrder(t *testing.T) {
	root := New(KindSequence,
		New(KindHeading).WithText("first"),
		New(KindHeading).WithText("second"),
		New(KindSequence, New(KindHeading).WithText("nested")),
	)

	var order []string
	Walk(root, func(n *Node, _ []string) {
		if n.Kind == KindHeading {
			order = append(order, n.Text)
		}
	})

	want := []string{"first", "second", "nested"}
	if len(order) != len(want) {
		t.Fatalf("Walk() visited %d headings, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Walk() order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestKind_OrderIndependent(t *testing.T) {
	if !KindComponent.OrderIndependent() {
		t.Error("KindComponent should be order-independent")
	}
	if KindHeading.OrderIndependent() {
		t.Error("KindHeading should be order-dependent")
	}
}
