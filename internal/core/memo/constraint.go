// Package memo implements the memoization and validation substrate: tracked
// inputs, constraint collection, and a cache whose entries are validated
// against the current value of their tracked inputs rather than bluntly
// invalidated.
//
// Grounded on internal/mcp/graph_cache.go's GraphCache (an RWMutex-guarded
// map keyed by project root, invalidated wholesale on change), generalized
// here from "one entry per project root" to "one entry per (function,
// hashed arguments)", with per-entry constraint validation replacing blunt
// invalidation.
package memo

// Queryable answers a previously-recorded query key with its current
// 64-bit answer hash. internal/core/introspect.Introspector satisfies this
// interface structurally (Go interfaces require no import back into memo),
// which is what lets Constraint.Validate re-run recorded queries against a
// freshly built Introspector without memo depending on introspect.
type Queryable interface {
	Answer(key string) (uint64, bool)
}

// entry is one recorded (query-key, answer-hash) fact.
type entry struct {
	key        string
	answerHash uint64
}

// Constraint is an opaque record of which facts a computation consulted
// while it ran. After a new Introspector (or other Queryable input) is
// built, the constraint is validated against it: if every recorded fact
// still holds, the cached result computed under the old facts remains
// valid.
type Constraint struct {
	entries []entry
}

// NewConstraint returns an empty constraint, ready to record facts.
func NewConstraint() *Constraint {
	return &Constraint{}
}

// Record appends a consulted fact. Calling Record with the same key
// multiple times within one constraint is allowed (a computation may ask
// the same question twice); Validate only requires the hash to still match
// on replay, so duplicates cost a little memory but never correctness.
func (c *Constraint) Record(key string, answerHash uint64) {
	if c == nil {
		return
	}
	c.entries = append(c.entries, entry{key: key, answerHash: answerHash})
}

// Validate re-runs every recorded query against q and returns true iff every
// answer is unchanged. An empty constraint (a computation that consulted
// nothing) always validates.
func (c *Constraint) Validate(q Queryable) bool {
	if c == nil {
		return true
	}
	for _, e := range c.entries {
		answer, ok := q.Answer(e.key)
		if !ok || answer != e.answerHash {
			return false
		}
	}
	return true
}

// Merge folds another constraint's recorded facts into c, so a caller's
// constraint accumulates everything its nested calls consulted.
func (c *Constraint) Merge(other *Constraint) {
	if c == nil || other == nil {
		return
	}
	c.entries = append(c.entries, other.entries...)
}

// Len reports how many facts have been recorded, mostly useful for tests
// and diagnostics.
func (c *Constraint) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
