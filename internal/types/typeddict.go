package types

// TypedDictField describes one member of a TypedDict class, per §3.3.
//
// IsProvided is mutable during narrowing in the sense that proving a
// NotRequired key present produces a *clone* of the owning Class with the
// flag set (ClassArena.CloneWithTypedDictProvided) — the shared descriptor
// is never mutated in place.
type TypedDictField struct {
	ValueType  Type
	IsRequired bool
	IsReadOnly bool
	IsProvided bool
}
