package memo

import "testing"

// fakeQueryable answers recorded keys from a static map, letting tests
// simulate an Introspector whose answers do or don't change between
// layout iterations.
type fakeQueryable map[string]uint64

func (f fakeQueryable) Answer(key string) (uint64, bool) {
	v, ok := f[key]
	return v, ok
}

func TestConstraint_ValidateTrueWhenUnchanged(t *testing.T) {
	c := NewConstraint()
	c.Record("page(heading:intro)", 1)
	c.Record("count(heading)", 3)

	q := fakeQueryable{"page(heading:intro)": 1, "count(heading)": 3}
	if !c.Validate(q) {
		t.Fatal("Validate() = false, want true when every fact still holds")
	}
}

func TestConstraint_ValidateFalseWhenChanged(t *testing.T) {
	c := NewConstraint()
	c.Record("count(heading)", 3)

	q := fakeQueryable{"count(heading)": 4}
	if c.Validate(q) {
		t.Fatal("Validate() = true, want false when a fact changed")
	}
}

func TestConstraint_ValidateFalseWhenFactMissing(t *testing.T) {
	c := NewConstraint()
	c.Record("location(label:missing)", 7)

	q := fakeQueryable{}
	if c.Validate(q) {
		t.Fatal("Validate() = true, want false when the recorded key no longer answers")
	}
}

func TestConstraint_EmptyAlwaysValidates(t *testing.T) {
	c := NewConstraint()
	if !c.Validate(fakeQueryable{}) {
		t.Fatal("an empty constraint must always validate")
	}
}

func TestConstraint_Merge(t *testing.T) {
	outer := NewConstraint()
	outer.Record("a", 1)

	inner := NewConstraint()
	inner.Record("b", 2)

	outer.Merge(inner)
	if outer.Len() != 2 {
		t.Fatalf("Merge() left %d entries, want 2", outer.Len())
	}
}

func TestCache_MissThenHit(t *testing.T) {
	cache := NewCache()
	q := fakeQueryable{"count(heading)": 3}

	if _, ok := cache.Get("evalModule", 42, q); ok {
		t.Fatal("Get() on empty cache returned a hit")
	}

	c := NewConstraint()
	c.Record("count(heading)", 3)
	cache.Put("evalModule", 42, "module-result", c)

	value, ok := cache.Get("evalModule", 42, q)
	if !ok || value != "module-result" {
		t.Fatalf("Get() = %v, %v; want module-result, true", value, ok)
	}
}

func TestCache_StaleEntryInvalidated(t *testing.T) {
	cache := NewCache()

	c := NewConstraint()
	c.Record("count(heading)", 3)
	cache.Put("evalModule", 42, "stale", c)

	// The world moved on: the introspector now answers count(heading)=4.
	q := fakeQueryable{"count(heading)": 4}
	if _, ok := cache.Get("evalModule", 42, q); ok {
		t.Fatal("Get() returned a hit whose constraint no longer validates")
	}
}

func TestCache_DistinctArgsDistinctEntries(t *testing.T) {
	cache := NewCache()
	q := fakeQueryable{}

	cache.Put("evalModule", 1, "one", NewConstraint())
	cache.Put("evalModule", 2, "two", NewConstraint())

	v1, _ := cache.Get("evalModule", 1, q)
	v2, _ := cache.Get("evalModule", 2, q)
	if v1 != "one" || v2 != "two" {
		t.Fatalf("Get() cross-contaminated entries: v1=%v v2=%v", v1, v2)
	}
}

func TestTracked_RecordsIntoActiveConstraint(t *testing.T) {
	type fakeWorld struct{}
	tracked := Track(fakeWorld{})

	c := NewConstraint()
	withConstraint := tracked.WithConstraint(c)
	withConstraint.Record("Source", "main.typ", "source-result")

	if c.Len() != 1 {
		t.Fatalf("Record() did not append to the active constraint, Len() = %d", c.Len())
	}
}

func TestTracked_NoConstraintRecordsNothing(t *testing.T) {
	tracked := Track(struct{}{})
	// No WithConstraint call: Record must be a safe no-op.
	tracked.Record("Source", "main.typ", "source-result")
}
