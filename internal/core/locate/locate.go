// Package locate assigns stable identities (Locations) to content elements
// during a single layout attempt.
//
// A Location is a pure function of the content tree path: the same document,
// laid out again with an unchanged path leading to an element, must produce
// the same Location for that element. Ties between identical siblings are
// broken by their position in traversal order, mirroring how
// entities.QualifiedNodeID disambiguates same-named nodes across systems by
// qualifying the ID with its parent path instead of relying on incidental
// insertion order.
package locate

import (
	"fmt"
	"hash/maphash"
)

// Location is a stable, opaque identity for an element instance within one
// compilation. Two Locations are equal iff they were produced for the same
// element instance across layout iterations.
type Location struct {
	hash uint64
}

// Detached is the zero Location, used where no element identity applies.
var Detached = Location{}

// IsDetached reports whether l carries no element identity.
func (l Location) IsDetached() bool {
	return l == Detached
}

// String renders l as a stable hex string, used where Locations need a
// total order (e.g. breaking ties among items placed at the exact same
// point) or a map/log key.
func (l Location) String() string {
	return fmt.Sprintf("loc:%016x", l.hash)
}

// ParseLocation reconstructs a Location from the string Location.String
// produced. It exists so a Location can round-trip through a constraint key
// (internal/core/memo.Constraint entries are plain strings) without memo or
// introspect needing access to Location's internal representation.
func ParseLocation(s string) (Location, bool) {
	var hash uint64
	n, err := fmt.Sscanf(s, "loc:%016x", &hash)
	if err != nil || n != 1 {
		return Location{}, false
	}
	return Location{hash: hash}, true
}

var seed = maphash.MakeSeed()

// Locator deterministically produces a Location for every element that asks
// for one during a layout attempt. It is constructed fresh per attempt and
// passed to pagination as that attempt's mutable identity source.
type Locator struct {
	// disambiguator counts how many times a given path key has been seen
	// so far in this attempt, breaking ties among identical siblings by
	// their position in iteration order.
	disambiguator map[uint64]uint32
}

// NewLocator constructs an empty Locator for one layout attempt.
func NewLocator() *Locator {
	return &Locator{disambiguator: make(map[uint64]uint32)}
}

// Fresh returns a new Location for the element whose content-tree path
// hashes to pathKey. Calling Fresh repeatedly with the same pathKey within
// one Locator produces a sequence of distinct Locations (the disambiguator
// increases each time); calling it again on a freshly constructed Locator
// with the same sequence of pathKeys reproduces the same sequence of
// Locations — this is what makes Locations stable across re-layout of
// unchanged content.
func (l *Locator) Fresh(pathKey uint64) Location {
	index := l.disambiguator[pathKey]
	l.disambiguator[pathKey] = index + 1
	return Location{hash: mix(pathKey, index)}
}

// PathKey hashes a traversal path (e.g. a sequence of child indices and
// element kinds from the root) into the key Fresh expects. Implementations
// of the evaluator/layout collaborators compute this from the content tree;
// it is exposed here so a deterministic hash function is shared in one
// place rather than reimplemented per caller.
func PathKey(segments ...string) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	for _, s := range segments {
		_, _ = h.WriteString(s)
		_ = h.WriteByte(0) // separator so ("ab","c") != ("a","bc")
	}
	return h.Sum64()
}

func mix(pathKey uint64, disambiguator uint32) uint64 {
	// A simple, deterministic 64-bit mix (splitmix64 finalizer) so that
	// (pathKey, disambiguator) pairs spread well across the Location space
	// without needing a second hash pass per Fresh call.
	x := pathKey ^ (uint64(disambiguator) * 0x9E3779B97F4A7C15)
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return x
}
