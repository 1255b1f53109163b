package memo

import (
	"fmt"
	"hash/maphash"
)

// Tracked wraps a value (typically a World implementation) so every call
// made through it is recorded into whichever Constraint is active for the
// current computation. This is the Go rendition of the "compiler-assisted
// method recording on a trait" pattern: since Go has no macro layer to
// intercept arbitrary method calls, call sites wrap each invocation
// explicitly through Record.
type Tracked[T any] struct {
	value      T
	constraint *Constraint
}

// Track wraps value for use within one computation. The returned Tracked
// records into whatever Constraint is attached via WithConstraint before use
// — a Tracked with no attached Constraint still forwards calls, it simply
// records nothing, matching "a memo hit is behaviorally indistinguishable
// from a miss" for callers that never look at constraints at all.
func Track[T any](value T) *Tracked[T] {
	return &Tracked[T]{value: value}
}

// WithConstraint returns a shallow copy of t that records into c.
func (t *Tracked[T]) WithConstraint(c *Constraint) *Tracked[T] {
	return &Tracked[T]{value: t.value, constraint: c}
}

// Value returns the wrapped value directly, for callers that only need to
// invoke it without recording (e.g. World.Library(), which is immutable and
// never needs a constraint fact — its answer can never change mid-run).
func (t *Tracked[T]) Value() T {
	return t.value
}

// Record appends a (methodID, args) -> result fact to the active
// constraint, if any. Call sites invoke the wrapped method themselves and
// pass its result here, since Go generics can't express "any method on T"
// generically the way a macro-based tracked-trait can.
func (t *Tracked[T]) Record(methodID string, args any, result any) {
	if t.constraint == nil {
		return
	}
	key := fmt.Sprintf("%s(%s)", methodID, HashArgString(args))
	t.constraint.Record(key, HashArg(result))
}

var seed = maphash.MakeSeed()

// HashArg produces a deterministic 64-bit hash of v's %#v representation.
// This is the stdlib fallback the memo substrate uses for arguments/results
// that don't carry their own structural Hash() method (see DESIGN.md: no
// pack dependency supplies a general structural hashing library).
func HashArg(v any) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	_, _ = h.WriteString(fmt.Sprintf("%#v", v))
	return h.Sum64()
}

// HashArgString renders v the same way HashArg hashes it, for building
// human-readable constraint keys.
func HashArgString(v any) string {
	return fmt.Sprintf("%#v", v)
}
