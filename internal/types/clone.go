package types

// CloneWithLiteral returns a copy of inst narrowed to carry lit as its
// literal identity, per §4.1's literal-narrowing clone operation. The
// base instance is never mutated — callers hold Type values, not
// pointers they're entitled to write through.
func CloneWithLiteral(inst *TInstance, lit *LiteralValue) *TInstance {
	clone := *inst
	clone.Args = cloneArgs(inst.Args)
	if inst.Tuple != nil {
		clone.Tuple = append([]TupleEntry(nil), inst.Tuple...)
	}
	clone.Literal = lit
	return &clone
}

// Specialize returns a copy of inst with its type-argument list replaced,
// per §4.1. Used by sequence and mapping narrowing to carry a narrowed
// element or value type argument.
func Specialize(inst *TInstance, args []TypeArg) *TInstance {
	clone := *inst
	clone.Args = cloneArgs(args)
	return &clone
}

// SpecializeTuple returns a copy of inst with its tuple shape replaced by
// entries, enforcing the at-most-one-unbounded-entry invariant of §4.1.
// A violating call is a caller bug, not a diagnostic, so it panics.
func SpecializeTuple(inst *TInstance, entries []TupleEntry) *TInstance {
	unbounded := 0
	for _, e := range entries {
		if e.Unbounded {
			unbounded++
		}
	}
	if unbounded > 1 {
		panic("types: tuple specialization with more than one unbounded entry")
	}
	clone := *inst
	clone.Tuple = append([]TupleEntry(nil), entries...)
	clone.Args = cloneArgs(inst.Args)
	return &clone
}

// CloneTypedDictEntries registers a derived Class in arena whose TypedDict
// field map has key's IsProvided flag set, and returns a TInstance of that
// derived class carrying inst's type arguments — the full clone-on-write
// path of §3.3 from instance down through the arena.
func CloneTypedDictEntries(inst *TInstance, arena *ClassArena, key string) *TInstance {
	derived := arena.CloneWithTypedDictProvided(inst.Class, key)
	clone := *inst
	clone.Class = derived
	clone.Args = cloneArgs(inst.Args)
	return &clone
}
