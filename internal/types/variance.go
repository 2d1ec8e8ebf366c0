package types

// Variance describes how a class type parameter behaves under subtyping.
// Grounded on the teacher's TypeClass/Instance descriptor style
// (instances.go) but repurposed from type-class dictionaries to
// class/MRO descriptors, per SPEC_FULL.md §3.2.
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "+"
	case Contravariant:
		return "-"
	default:
		return ""
	}
}
